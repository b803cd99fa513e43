package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"ttreviews/config"
	"ttreviews/db"
	"ttreviews/model"
	"ttreviews/moderation"
	"ttreviews/utils"
)

// svc is the shared workflow service, set by RegisterHandlers.
var svc *moderation.Service

// QueueCommandHandler posts pending submissions of a kind to the review
// channel, each with approve/reject buttons.
func QueueCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireModerator(s, i) {
		return
	}

	kindValue := i.ApplicationCommandData().Options[0].StringValue()
	kind, err := model.ParseKind(kindValue)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Unknown submission kind: %s", kindValue))
		return
	}

	reviewChannelID := config.Cfg.Review.ReviewChannelID
	if reviewChannelID == "" {
		respondEphemeral(s, i, "Review channel is not configured")
		return
	}

	batch := config.Cfg.Review.QueueBatchSize
	submissions, err := db.PendingSubmissions(context.Background(), kind, batch)
	if err != nil {
		log.Errorf("Failed to load pending %s submissions: %v", kind, err)
		respondEphemeral(s, i, "Could not load the moderation queue")
		return
	}
	if len(submissions) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("No pending %s submissions.", kind))
		return
	}

	for _, sub := range submissions {
		_, err := s.ChannelMessageSendComplex(reviewChannelID, &discordgo.MessageSend{
			Embed:      BuildReviewEmbed(sub),
			Components: BuildReviewComponents(sub),
		})
		if err != nil {
			log.Errorf("Failed to post submission %s to review channel: %v", sub.ID, err)
		}
	}

	respondEphemeral(s, i, fmt.Sprintf("Posted %d pending %s submission(s) for review.", len(submissions), kind))
}

// ApproveHandler handles the approve button on a review message.
func ApproveHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireModerator(s, i) {
		return
	}

	kind, id, ok := parseReviewCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	res := svc.RecordApproval(context.Background(), kind, id, i.Member.User.ID, model.SourceDiscord, "")
	if !res.Success {
		respondEphemeral(s, i, res.Error)
		return
	}

	refreshReviewMessage(s, i, kind, id)
}

// RejectHandler shows the rejection modal for a review message.
func RejectHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireModerator(s, i) {
		return
	}

	kind, id, ok := parseReviewCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("reject_reason:%s:%s", kind, id),
			Title:    "Reject submission",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "category",
							Label:       "Category",
							Style:       discordgo.TextInputShort,
							Placeholder: "spam, duplicate, inaccurate, image...",
							Required:    true,
							MaxLength:   32,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "reason",
							Label:       "Reason",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Explain why this submission is rejected...",
							Required:    true,
							MinLength:   8,
							MaxLength:   256,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Error responding with rejection modal: %v", err)
	}
}

// RejectModalHandler handles the submission of the rejection reason modal.
func RejectModalHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	kind, id, ok := parseReviewCustomID(i.ModalSubmitData().CustomID)
	if !ok {
		return
	}

	data := i.ModalSubmitData()
	category := data.Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
	reason := data.Components[1].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value

	res := svc.RecordRejection(context.Background(), kind, id, i.Member.User.ID, model.SourceDiscord,
		model.Rejection{Category: category, Reason: reason})
	if !res.Success {
		respondEphemeral(s, i, res.Error)
		return
	}

	refreshReviewMessage(s, i, kind, id)
}

// parseReviewCustomID splits "<prefix>:<kind>:<id>" custom IDs.
func parseReviewCustomID(customID string) (model.Kind, string, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		return "", "", false
	}
	kind, err := model.ParseKind(parts[1])
	if err != nil {
		log.Warnf("Interaction %s references unknown kind: %v", customID, err)
		return "", "", false
	}
	return kind, parts[2], true
}

// refreshReviewMessage rewrites the review message with the submission's
// current status and decision trail.
func refreshReviewMessage(s *discordgo.Session, i *discordgo.InteractionCreate, kind model.Kind, id string) {
	ctx := context.Background()

	sub, err := db.GetSubmission(ctx, kind, id)
	if err != nil {
		// Rejected player setups delete their row; show a bare trail.
		sub = &model.Submission{ID: id, Kind: kind, Status: model.StatusRejected}
	}
	records := svc.SubmissionApprovals(ctx, kind, id)

	embeds := []*discordgo.MessageEmbed{BuildReviewEmbed(sub), BuildStatusEmbed(sub, records)}
	components := BuildReviewComponents(sub)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Failed to update review message for submission %s: %v", id, err)
	}
}

// requireModerator checks the interaction member against the configured
// moderator allow-list and replies ephemerally when refused.
func requireModerator(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || !utils.CheckAuth(i.Member.User.ID, i.Member.Roles) {
		respondEphemeral(s, i, "You are not authorized to moderate submissions.")
		return false
	}
	return true
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending ephemeral response: %v", err)
	}
}
