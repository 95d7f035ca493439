package invites

import (
	invitesdomain "trip-planner-go/internal/domain/invites"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Invites *invitesdomain.Service
	log     logger.Logger
}

func New(invites *invitesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Invites: invites,
		log:     log,
	}
}
