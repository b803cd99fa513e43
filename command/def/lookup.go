package def

import "github.com/bwmarrin/discordgo"

var LookupCommand = &discordgo.ApplicationCommand{
	Name:        "lookup",
	Description: "Look up a user's submission history",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to look up (defaults to yourself)",
			Required:    false,
		},
	},
}
