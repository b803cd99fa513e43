package handler

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var (
	commandHandlers   = make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate))
	componentHandlers = make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate))
	modalHandlers     = make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate))
)

// AddCommandHandler registers a handler for a slash command.
func AddCommandHandler(name string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate)) {
	commandHandlers[name] = handler
}

// AddComponentHandler registers a handler for message components whose
// custom ID starts with the given prefix.
func AddComponentHandler(prefix string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate)) {
	componentHandlers[prefix] = handler
}

// AddModalHandler registers a handler for modal submissions whose custom ID
// starts with the given prefix.
func AddModalHandler(prefix string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate)) {
	modalHandlers[prefix] = handler
}

// OnInteractionCreate is the main interaction router.
// It should be registered as the primary interaction handler in main.go.
func OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if handler, ok := commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
			return
		}
		log.Warnf("No handler for command %s", i.ApplicationCommandData().Name)
	case discordgo.InteractionMessageComponent:
		key := customIDPrefix(i.MessageComponentData().CustomID)
		if handler, ok := componentHandlers[key]; ok {
			handler(s, i)
			return
		}
		log.Warnf("No handler for component %s", key)
	case discordgo.InteractionModalSubmit:
		key := customIDPrefix(i.ModalSubmitData().CustomID)
		if handler, ok := modalHandlers[key]; ok {
			handler(s, i)
			return
		}
		log.Warnf("No handler for modal %s", key)
	}
}

func customIDPrefix(customID string) string {
	parts := strings.SplitN(customID, ":", 2)
	return parts[0]
}
