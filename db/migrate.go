package db

import (
	log "github.com/sirupsen/logrus"
)

// createTables creates the necessary tables if they don't exist in the database.
func createTables() {
	// One submission table per kind, all with the same column shape. The
	// workflow only touches status and the rejection annotations; the rest
	// is domain payload.
	for _, table := range submissionTables {
		createSubmissionTableSQL := `
	CREATE TABLE IF NOT EXISTS ` + table + ` (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		author_nickname TEXT,
		name TEXT NOT NULL,
		summary TEXT,
		details TEXT,
		target_id TEXT,
		image_key TEXT,
		created_at INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		rejection_category TEXT,
		rejection_reason TEXT
	);`

		if _, err := DB.Exec(createSubmissionTableSQL); err != nil {
			log.Fatalf("Failed to create %s table: %v", table, err)
		}
	}

	// The append-only decision log. The uniqueness constraint makes the
	// duplicate-approval guarantee strict even under concurrent moderators.
	createApprovalsTableSQL := `
	CREATE TABLE IF NOT EXISTS approvals (
		id TEXT PRIMARY KEY,
		submission_type TEXT NOT NULL,
		submission_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		source TEXT NOT NULL,
		action TEXT NOT NULL,
		rejection_category TEXT,
		rejection_reason TEXT,
		notes TEXT,
		created_at INTEGER NOT NULL,
		UNIQUE (submission_type, submission_id, moderator_id, action)
	);`

	_, err := DB.Exec(createApprovalsTableSQL)
	if err != nil {
		log.Fatalf("Failed to create approvals table: %v", err)
	}

	// Published canonical tables, written on full approval.
	createEquipmentTableSQL := `
	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		summary TEXT,
		details TEXT,
		image_key TEXT,
		submission_id TEXT NOT NULL,
		published_at INTEGER NOT NULL
	);`

	_, err = DB.Exec(createEquipmentTableSQL)
	if err != nil {
		log.Fatalf("Failed to create equipment table: %v", err)
	}

	createPlayersTableSQL := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		summary TEXT,
		details TEXT,
		image_key TEXT,
		submission_id TEXT NOT NULL,
		published_at INTEGER NOT NULL
	);`

	_, err = DB.Exec(createPlayersTableSQL)
	if err != nil {
		log.Fatalf("Failed to create players table: %v", err)
	}

	// Contributor stats, incremented when a submission finalizes.
	createUsersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		approved_count INTEGER NOT NULL DEFAULT 0,
		rejected_count INTEGER NOT NULL DEFAULT 0
	);`

	_, err = DB.Exec(createUsersTableSQL)
	if err != nil {
		log.Fatalf("Failed to create users table: %v", err)
	}

	// The 'id_counter' table for sequential submission ID generation.
	createIdCounterTableSQL := `
	CREATE TABLE IF NOT EXISTS id_counter (
		counter_name TEXT PRIMARY KEY,
		current_value INTEGER NOT NULL DEFAULT 0
	);`

	_, err = DB.Exec(createIdCounterTableSQL)
	if err != nil {
		log.Fatalf("Failed to create id_counter table: %v", err)
	}

	_, err = DB.Exec("INSERT OR IGNORE INTO id_counter(counter_name, current_value) VALUES('submission_id', 0)")
	if err != nil {
		log.Fatalf("Failed to seed id_counter table: %v", err)
	}

	log.Info("Database tables initialized successfully.")
}
