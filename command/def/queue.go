package def

import (
	"github.com/bwmarrin/discordgo"

	"ttreviews/model"
)

var QueueCommand = &discordgo.ApplicationCommand{
	Name:        "queue",
	Description: "Post pending submissions of a kind to the review channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "kind",
			Description: "Submission kind to queue for review",
			Required:    true,
			Choices:     kindChoices(),
		},
	},
}

func kindChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(model.AllKinds))
	for _, kind := range model.AllKinds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(kind),
			Value: string(kind),
		})
	}
	return choices
}
