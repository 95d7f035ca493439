package trips

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	tripsdomain "trip-planner-go/internal/domain/trips"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

const maxListLimit = 100

type createTripRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type updateTripRequest struct {
	Title       *string `json:"title"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type tripResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OwnerID     string    `json:"owner_id"`
	IsOwner     bool      `json:"is_owner"`
	CreatedAt   time.Time `json:"created_at"`
}

type tripListResponse struct {
	Items []tripResponse `json:"items"`
	Total int64          `json:"total"`
}

type memberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	Email     *string   `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
}

type memberListResponse struct {
	Items []memberResponse `json:"items"`
}

func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil || limit == 0 || limit > maxListLimit {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, total, err := h.Trips.ListTrips(r.Context(), user.ID, tripsdomain.ListFilter{
		Query:  strings.TrimSpace(query.Get("q")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.list", err, "user_id", user.ID)
		return
	}

	response := tripListResponse{Items: make([]tripResponse, 0, len(items)), Total: total}
	for i := range items {
		response.Items = append(response.Items, toTripResponse(&items[i], user.ID))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}
	startDate, err := commonhandler.ParseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := commonhandler.ParseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	trip, err := h.Trips.CreateTrip(r.Context(), user.ID, tripsdomain.CreateTripInput{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.create", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(trip, user.ID))
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	trip, err := h.Trips.GetTrip(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.get", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip, user.ID))
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}
	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	trip, err := h.Trips.UpdateTrip(r.Context(), user.ID, tripsdomain.UpdateTripInput{
		ID:          tripID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.update", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip, user.ID))
}

func (h *Handlers) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	if err := h.Trips.DeleteTrip(r.Context(), user.ID, tripID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.delete", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	commonhandler.WriteNoContent(w)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	members, err := h.Trips.ListMembers(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "trips.list_members", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	response := memberListResponse{Items: make([]memberResponse, 0, len(members))}
	for _, member := range members {
		response.Items = append(response.Items, memberResponse{
			UserID:    member.UserID,
			Role:      member.Role,
			JoinedAt:  member.JoinedAt,
			Email:     member.Email,
			AvatarURL: member.AvatarURL,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func toTripResponse(trip *tripsdomain.Trip, userID string) tripResponse {
	return tripResponse{
		ID:          trip.ID,
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   commonhandler.FormatDate(trip.StartDate),
		EndDate:     commonhandler.FormatDate(trip.EndDate),
		OwnerID:     trip.OwnerID,
		IsOwner:     trip.OwnerID == userID,
		CreatedAt:   trip.CreatedAt,
	}
}
