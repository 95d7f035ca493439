package handler

import (
	"trip-planner-go/internal/transport/httpserver/handler/common"
	"trip-planner-go/internal/transport/httpserver/handler/invites"
	"trip-planner-go/internal/transport/httpserver/handler/notes"
	"trip-planner-go/internal/transport/httpserver/handler/packing"
	"trip-planner-go/internal/transport/httpserver/handler/shopping"
	"trip-planner-go/internal/transport/httpserver/handler/trips"
)

type Handlers struct {
	Common   *common.Handlers
	Trips    *trips.Handlers
	Invites  *invites.Handlers
	Notes    *notes.Handlers
	Packing  *packing.Handlers
	Shopping *shopping.Handlers
}
