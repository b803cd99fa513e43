package review

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"ttreviews/model"
)

var statusColors = map[model.Status]int{
	model.StatusPending:        0xFFFF00, // Yellow for pending
	model.StatusAwaitingSecond: 0x00BFFF, // Deep sky blue
	model.StatusApproved:       0x2ea043, // Green
	model.StatusRejected:       0xFF0000, // Red
}

var statusLabels = map[model.Status]string{
	model.StatusPending:        "Pending — needs two approvals",
	model.StatusAwaitingSecond: "Awaiting second approval",
	model.StatusApproved:       "Approved and published",
	model.StatusRejected:       "Rejected",
}

// BuildReviewEmbed builds the embed posted to the review channel for one
// queued submission.
func BuildReviewEmbed(sub *model.Submission) *discordgo.MessageEmbed {
	description := fmt.Sprintf(
		"**Submission ID:** %s\n**Kind:** %s\n**Submitter:** <@%s>\n**Name:** %s\n\n%s",
		sub.ID, sub.Kind, sub.AuthorID, sub.Name, sub.Summary,
	)
	if sub.Details != "" {
		description += "\n\n" + sub.Details
	}

	return &discordgo.MessageEmbed{
		Title:       "Submission awaiting review",
		Description: description,
		Color:       statusColors[sub.Status],
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Submitted %s • ID: %s", time.Unix(sub.CreatedAt, 0).Format("2006-01-02 15:04:05"), sub.ID),
		},
	}
}

// BuildStatusEmbed summarizes the decision trail and current status of a
// submission under review.
func BuildStatusEmbed(sub *model.Submission, records []model.ApprovalRecord) *discordgo.MessageEmbed {
	var summary string
	for _, rec := range records {
		if rec.Action == model.ActionRejected {
			summary += fmt.Sprintf("<@%s> rejected (`%s`)\n> %s\n", rec.ModeratorID, rec.RejectionCategory, rec.RejectionReason)
		} else {
			summary += fmt.Sprintf("<@%s> approved\n", rec.ModeratorID)
		}
	}
	if summary == "" {
		summary = "No decisions yet."
	}

	return &discordgo.MessageEmbed{
		Title:       "Review status",
		Description: summary,
		Color:       statusColors[sub.Status],
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Current status",
				Value: statusLabels[sub.Status],
			},
		},
	}
}

// BuildReviewComponents builds the approve/reject buttons for a review
// message. Buttons are disabled once the submission is finalized.
func BuildReviewComponents(sub *model.Submission) []discordgo.MessageComponent {
	terminal := sub.Status.Terminal()
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("review_approve:%s:%s", sub.Kind, sub.ID),
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
					Disabled: terminal,
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("review_reject:%s:%s", sub.Kind, sub.ID),
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
					Disabled: terminal,
				},
			},
		},
	}
}

// BuildPublicationMessage constructs the announcement for the publish
// channel once a submission is fully approved.
func BuildPublicationMessage(sub *model.Submission) *discordgo.MessageSend {
	content := fmt.Sprintf("-# New %s entry from <@%s>\n## %s\n%s", sub.Kind, sub.AuthorID, sub.Name, sub.Summary)

	embed := &discordgo.MessageEmbed{
		Title: "Details",
		Color: statusColors[model.StatusApproved],
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Submitter",
				Value:  fmt.Sprintf("<@%s>", sub.AuthorID),
				Inline: true,
			},
			{
				Name:   "Kind",
				Value:  string(sub.Kind),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Submitted %s • ID: %s", time.Unix(sub.CreatedAt, 0).Format("2006-01-02 15:04:05"), sub.ID),
		},
	}

	return &discordgo.MessageSend{
		Content: content,
		Embed:   embed,
	}
}

// BuildRejectionDM constructs the direct message sent to a submitter whose
// submission was rejected.
func BuildRejectionDM(sub *model.Submission) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Your submission was not approved",
		Description: "Unfortunately the following submission did not pass review:",
		Color:       statusColors[model.StatusRejected],
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Submission",
				Value: fmt.Sprintf("%s (%s)", sub.Name, sub.Kind),
			},
			{
				Name:  "Category",
				Value: sub.RejectionCategory,
			},
			{
				Name:  "Reason",
				Value: sub.RejectionReason,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Thanks for contributing — we hope to see your next submission!",
		},
	}
}
