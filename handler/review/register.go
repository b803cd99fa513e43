package review

import (
	"ttreviews/command"
	"ttreviews/handler"
	"ttreviews/moderation"
)

// RegisterHandlers wires the review handlers to the interaction router.
func RegisterHandlers(service *moderation.Service) {
	svc = service

	handler.AddCommandHandler(command.QueueCommand.Name, QueueCommandHandler)
	handler.AddCommandHandler(command.LookupCommand.Name, LookupCommandHandler)

	handler.AddComponentHandler("review_approve", ApproveHandler)
	handler.AddComponentHandler("review_reject", RejectHandler)
	handler.AddModalHandler("reject_reason", RejectModalHandler)
}
