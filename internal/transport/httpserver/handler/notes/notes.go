package notes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	notesdomain "trip-planner-go/internal/domain/notes"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	NoteType string `json:"note_type"`
}

type updateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	NoteType *string `json:"note_type"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	NoteType  string    `json:"note_type"`
	Content   string    `json:"content"`
	IsAuthor  bool      `json:"is_author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteListResponse struct {
	Items []noteResponse `json:"items"`
}

func (h *Handlers) ListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	items, err := h.Notes.List(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "notes.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	response := noteListResponse{Items: make([]noteResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toNoteResponse(&items[i], user.ID))
	}
	commonhandler.WriteJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	note, err := h.Notes.Create(r.Context(), user.ID, tripID, notesdomain.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		NoteType: req.NoteType,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "notes.create", err, "user_id", user.ID, "trip_id", tripID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusCreated, toNoteResponse(note, user.ID))
}

func (h *Handlers) GetNote(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	noteID := chi.URLParam(r, "note_id")
	note, err := h.Notes.Get(r.Context(), user.ID, noteID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "notes.get", err, "user_id", user.ID, "note_id", noteID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toNoteResponse(note, user.ID))
}

func (h *Handlers) UpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	noteID := chi.URLParam(r, "note_id")
	note, err := h.Notes.Update(r.Context(), user.ID, notesdomain.UpdateNoteInput{
		ID:       noteID,
		Title:    req.Title,
		Content:  req.Content,
		NoteType: req.NoteType,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "notes.update", err, "user_id", user.ID, "note_id", noteID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toNoteResponse(note, user.ID))
}

func (h *Handlers) DeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	noteID := chi.URLParam(r, "note_id")
	if err := h.Notes.Delete(r.Context(), user.ID, noteID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "notes.delete", err, "user_id", user.ID, "note_id", noteID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func toNoteResponse(note *notesdomain.Note, userID string) noteResponse {
	return noteResponse{
		ID:        note.ID,
		TripID:    note.TripID,
		UserID:    note.UserID,
		Title:     note.Title,
		NoteType:  note.NoteType,
		Content:   note.Content,
		IsAuthor:  note.UserID == userID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
