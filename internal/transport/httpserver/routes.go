package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/metrics"
	"trip-planner-go/internal/transport/httpserver/handler"
	authmw "trip-planner-go/internal/transport/httpserver/middleware"
	"trip-planner-go/pkg/logger"
)

// NewRouter builds the API. m may be nil, in which case no metrics are
// collected and /metrics is not mounted.
func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/trips", handlers.Trips.ListTrips)
			r.Post("/trips", handlers.Trips.CreateTrip)
			r.Get("/trips/{trip_id}", handlers.Trips.GetTrip)
			r.Patch("/trips/{trip_id}", handlers.Trips.UpdateTrip)
			r.Delete("/trips/{trip_id}", handlers.Trips.DeleteTrip)
			r.Get("/trips/{trip_id}/members", handlers.Trips.ListMembers)

			r.Get("/trips/{trip_id}/invites", handlers.Invites.ListForTrip)
			r.Post("/trips/{trip_id}/invites", handlers.Invites.CreateInvite)
			r.Get("/invites", handlers.Invites.ListPending)
			r.Get("/invites/sent", handlers.Invites.ListSent)
			r.Get("/invites/{invite_id}", handlers.Invites.GetInvite)
			r.Post("/invites/{invite_id}/accept", handlers.Invites.AcceptInvite)
			r.Post("/invites/{invite_id}/decline", handlers.Invites.DeclineInvite)
			r.Delete("/invites/{invite_id}", handlers.Invites.CancelInvite)

			r.Get("/trips/{trip_id}/notes", handlers.Notes.ListNotes)
			r.Post("/trips/{trip_id}/notes", handlers.Notes.CreateNote)
			r.Get("/notes/{note_id}", handlers.Notes.GetNote)
			r.Patch("/notes/{note_id}", handlers.Notes.UpdateNote)
			r.Delete("/notes/{note_id}", handlers.Notes.DeleteNote)

			r.Get("/trips/{trip_id}/packing-lists", handlers.Packing.ListLists)
			r.Post("/trips/{trip_id}/packing-lists", handlers.Packing.CreateList)
			r.Get("/packing-lists/{list_id}", handlers.Packing.GetList)
			r.Delete("/packing-lists/{list_id}", handlers.Packing.DeleteList)
			r.Post("/packing-lists/{list_id}/items", handlers.Packing.CreateItem)
			r.Post("/packing-lists/{list_id}/template", handlers.Packing.SaveAsTemplate)
			r.Patch("/packing-items/{item_id}", handlers.Packing.UpdateItem)
			r.Put("/packing-items/{item_id}/packed", handlers.Packing.SetItemPacked)
			r.Delete("/packing-items/{item_id}", handlers.Packing.DeleteItem)

			r.Get("/packing-templates", handlers.Packing.ListTemplates)
			r.Post("/packing-templates", handlers.Packing.CreateTemplate)
			r.Get("/packing-templates/{template_id}", handlers.Packing.GetTemplate)
			r.Patch("/packing-templates/{template_id}", handlers.Packing.RenameTemplate)
			r.Delete("/packing-templates/{template_id}", handlers.Packing.DeleteTemplate)
			r.Post("/packing-templates/{template_id}/apply", handlers.Packing.ApplyTemplate)
			r.Post("/packing-templates/{template_id}/items", handlers.Packing.CreateTemplateItem)
			r.Patch("/packing-template-items/{item_id}", handlers.Packing.UpdateTemplateItem)
			r.Delete("/packing-template-items/{item_id}", handlers.Packing.DeleteTemplateItem)

			r.Get("/trips/{trip_id}/shopping-list", handlers.Shopping.GetTripList)
			r.Post("/trips/{trip_id}/shopping-list", handlers.Shopping.CreateList)
			r.Get("/shopping-lists/{list_id}", handlers.Shopping.GetList)
			r.Delete("/shopping-lists/{list_id}", handlers.Shopping.DeleteList)
			r.Post("/shopping-lists/{list_id}/items", handlers.Shopping.CreateItem)
			r.Patch("/shopping-items/{item_id}", handlers.Shopping.UpdateItem)
			r.Put("/shopping-items/{item_id}/purchased", handlers.Shopping.SetItemPurchased)
			r.Delete("/shopping-items/{item_id}", handlers.Shopping.DeleteItem)
		})
	})

	return r
}
