package review

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"ttreviews/config"
	"ttreviews/model"
)

// Announcer mirrors moderation outcomes into Discord: fully approved
// submissions are announced in the publish channel and rejected submitters
// receive a direct message. It plugs into the workflow as a notifier, so
// decisions made through the admin API are announced too.
type Announcer struct {
	session *discordgo.Session
}

func NewAnnouncer(session *discordgo.Session) *Announcer {
	return &Announcer{session: session}
}

func (a *Announcer) StatusChanged(sub *model.Submission, rec *model.ApprovalRecord) {
	switch sub.Status {
	case model.StatusApproved:
		a.announcePublication(sub)
	case model.StatusRejected:
		a.sendRejectionDM(sub)
	}
}

func (a *Announcer) announcePublication(sub *model.Submission) {
	publishChannelID := config.Cfg.Review.PublishChannelID
	if publishChannelID == "" {
		log.Warn("Publish channel ID not configured, skipping announcement")
		return
	}

	_, err := a.session.ChannelMessageSendComplex(publishChannelID, BuildPublicationMessage(sub))
	if err != nil {
		log.Errorf("Failed to announce publication of submission %s: %v", sub.ID, err)
	}
}

func (a *Announcer) sendRejectionDM(sub *model.Submission) {
	if sub.AuthorID == "" {
		return
	}

	userChannel, err := a.session.UserChannelCreate(sub.AuthorID)
	if err != nil {
		log.Errorf("Could not create DM channel for user %s: %v", sub.AuthorID, err)
		return
	}

	_, err = a.session.ChannelMessageSendEmbed(userChannel.ID, BuildRejectionDM(sub))
	if err != nil {
		log.Errorf("Could not send rejection DM to user %s: %v", sub.AuthorID, err)
		return
	}

	// Send the submitted text as plain content for easy copying.
	if sub.Details != "" {
		_, err = a.session.ChannelMessageSend(userChannel.ID, fmt.Sprintf("```\n%s\n```", sub.Details))
		if err != nil {
			log.Errorf("Could not send DM plain text to user %s: %v", sub.AuthorID, err)
		}
	}
}
