package review

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"ttreviews/db"
)

// LookupCommandHandler shows a user's submission history and stats.
func LookupCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	targetID := i.Member.User.ID
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		targetID = opts[0].UserValue(s).ID
	}

	ctx := context.Background()
	submissions, err := db.SubmissionsByAuthor(ctx, targetID)
	if err != nil {
		log.Errorf("Failed to load submissions for user %s: %v", targetID, err)
		respondEphemeral(s, i, "Could not load submission history")
		return
	}

	stats, err := db.GetUserStats(ctx, targetID)
	if err != nil {
		log.Errorf("Failed to load stats for user %s: %v", targetID, err)
		respondEphemeral(s, i, "Could not load submission history")
		return
	}

	var history string
	for _, sub := range submissions {
		history += fmt.Sprintf("`%s` %s — **%s** (`%s`)\n", sub.ID, sub.Kind, sub.Name, sub.Status)
	}
	if history == "" {
		history = "No submissions yet."
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Submission history",
		Description: history,
		Color:       0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Approved",
				Value:  fmt.Sprintf("%d", stats.ApprovedCount),
				Inline: true,
			},
			{
				Name:   "Rejected",
				Value:  fmt.Sprintf("%d", stats.RejectedCount),
				Inline: true,
			},
		},
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to lookup command: %v", err)
	}
}
