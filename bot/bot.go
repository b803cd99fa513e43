package bot

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"ttreviews/command"
	"ttreviews/handler"
)

var dg *discordgo.Session

// New creates the Discord session with the interaction router and the
// intents the review flow needs.
func New(token string) (*discordgo.Session, error) {
	var err error
	dg, err = discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	dg.AddHandler(handler.OnInteractionCreate)
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds

	return dg, nil
}

// RegisterCommands creates the slash commands in every allowed guild.
func RegisterCommands(s *discordgo.Session, guilds []string) {
	for _, guildID := range guilds {
		for _, cmd := range command.AllCommands {
			_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
			if err != nil {
				log.Fatalf("Cannot create '%v' command: %v", cmd.Name, err)
			}
		}
	}
}

// GetSession returns the current Discord session.
func GetSession() *discordgo.Session {
	return dg
}
