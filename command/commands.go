package command

import (
	"github.com/bwmarrin/discordgo"

	"ttreviews/command/def"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.QueueCommand,
	def.LookupCommand,
}

// Re-exported for handler registration.
var (
	QueueCommand  = def.QueueCommand
	LookupCommand = def.LookupCommand
)
