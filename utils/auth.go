package utils

import (
	"slices"

	"ttreviews/config"
)

// CheckAuth checks whether a user is allowed to moderate.
func CheckAuth(userID string, roles []string) bool {
	authConfig := config.Cfg.Commands.Auth

	// Developers may always moderate
	if slices.Contains(authConfig.Developers, userID) {
		return true
	}

	// Otherwise an admin role is required
	for _, role := range roles {
		if slices.Contains(authConfig.AdminRoles, role) {
			return true
		}
	}

	return false
}
