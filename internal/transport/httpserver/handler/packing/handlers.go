package packing

import (
	packingdomain "trip-planner-go/internal/domain/packing"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Packing *packingdomain.Service
	log     logger.Logger
}

func New(packing *packingdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Packing: packing,
		log:     log,
	}
}
