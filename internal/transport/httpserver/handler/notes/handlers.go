package notes

import (
	notesdomain "trip-planner-go/internal/domain/notes"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Notes *notesdomain.Service
	log   logger.Logger
}

func New(notes *notesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Notes: notes,
		log:   log,
	}
}
