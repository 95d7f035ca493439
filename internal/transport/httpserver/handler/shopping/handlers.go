package shopping

import (
	shoppingdomain "trip-planner-go/internal/domain/shopping"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Shopping *shoppingdomain.Service
	log      logger.Logger
}

func New(shopping *shoppingdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Shopping: shopping,
		log:      log,
	}
}
