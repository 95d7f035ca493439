package trips

import (
	tripsdomain "trip-planner-go/internal/domain/trips"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Trips *tripsdomain.Service
	log   logger.Logger
}

func New(trips *tripsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Trips: trips,
		log:   log,
	}
}
