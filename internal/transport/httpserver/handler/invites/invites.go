package invites

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	invitesdomain "trip-planner-go/internal/domain/invites"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

type createInviteRequest struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type inviteResponse struct {
	ID              string     `json:"id"`
	TripID          string     `json:"trip_id"`
	UserID          string     `json:"user_id"`
	InvitedBy       string     `json:"invited_by"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	RespondedAt     *time.Time `json:"responded_at"`
	TripTitle       *string    `json:"trip_title,omitempty"`
	TripDestination *string    `json:"trip_destination,omitempty"`
	InviteeEmail    *string    `json:"invitee_email,omitempty"`
	InviterEmail    *string    `json:"inviter_email,omitempty"`
}

type inviteListResponse struct {
	Items []inviteResponse `json:"items"`
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req createInviteRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	invite, err := h.Invites.Create(r.Context(), user.ID, tripID, invitesdomain.CreateInviteInput{
		UserID:    req.UserID,
		Email:     req.Email,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.create", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	commonhandler.WriteJSON(w, http.StatusCreated, toInviteResponse(invite))
}

func (h *Handlers) ListPending(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Invites.ListPending(r.Context(), user.ID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.list_pending", err, "user_id", user.ID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toInviteList(items))
}

func (h *Handlers) ListSent(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Invites.ListSent(r.Context(), user.ID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.list_sent", err, "user_id", user.ID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toInviteList(items))
}

func (h *Handlers) ListForTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	items, err := h.Invites.ListForTrip(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.list_trip", err, "user_id", user.ID, "trip_id", tripID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toInviteList(items))
}

func (h *Handlers) GetInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	inviteID := chi.URLParam(r, "invite_id")
	invite, err := h.Invites.Get(r.Context(), user.ID, inviteID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.get", err, "user_id", user.ID, "invite_id", inviteID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toInviteResponse(invite))
}

func (h *Handlers) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "invites.accept", h.Invites.Accept)
}

func (h *Handlers) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "invites.decline", h.Invites.Decline)
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, op string, action func(ctx context.Context, actorID, inviteID string) (*invitesdomain.Invite, error)) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	inviteID := chi.URLParam(r, "invite_id")
	invite, err := action(r.Context(), user.ID, inviteID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, op, err, "user_id", user.ID, "invite_id", inviteID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toInviteResponse(invite))
}

func (h *Handlers) CancelInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	inviteID := chi.URLParam(r, "invite_id")
	if err := h.Invites.Cancel(r.Context(), user.ID, inviteID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "invites.cancel", err, "user_id", user.ID, "invite_id", inviteID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func toInviteResponse(invite *invitesdomain.Invite) inviteResponse {
	return inviteResponse{
		ID:          invite.ID,
		TripID:      invite.TripID,
		UserID:      invite.UserID,
		InvitedBy:   invite.InvitedBy,
		Status:      string(invite.Status),
		CreatedAt:   invite.CreatedAt,
		ExpiresAt:   invite.ExpiresAt,
		RespondedAt: invite.RespondedAt,
	}
}

func toInviteList(items []invitesdomain.Details) inviteListResponse {
	response := inviteListResponse{Items: make([]inviteResponse, 0, len(items))}
	for i := range items {
		item := toInviteResponse(&items[i].Invite)
		title, destination := items[i].TripTitle, items[i].TripDestination
		item.TripTitle = &title
		item.TripDestination = &destination
		item.InviteeEmail = items[i].InviteeEmail
		item.InviterEmail = items[i].InviterEmail
		response.Items = append(response.Items, item)
	}
	return response
}
