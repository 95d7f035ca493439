package packing

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	packingdomain "trip-planner-go/internal/domain/packing"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

type createListRequest struct {
	ListType string `json:"list_type"`
}

type itemRequest struct {
	Name     string `json:"item_name"`
	Quantity int    `json:"item_quantity"`
}

type updateItemRequest struct {
	Name     *string `json:"item_name"`
	Quantity *int    `json:"item_quantity"`
}

type setPackedRequest struct {
	IsPacked *bool `json:"is_packed"`
}

type listResponse struct {
	ID        string          `json:"id"`
	TripID    string          `json:"trip_id"`
	ListType  string          `json:"list_type"`
	UserID    *string         `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Items     *[]itemResponse `json:"items,omitempty"`
}

type listListResponse struct {
	Items []listResponse `json:"items"`
}

type itemResponse struct {
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"`
	ItemName     string    `json:"item_name"`
	ItemQuantity int       `json:"item_quantity"`
	IsPacked     bool      `json:"is_packed"`
	AddedBy      *string   `json:"added_by"`
	PackedBy     *string   `json:"packed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handlers) ListLists(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	lists, err := h.Packing.ListForTrip(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.list_lists", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	response := listListResponse{Items: make([]listResponse, 0, len(lists))}
	for i := range lists {
		response.Items = append(response.Items, toListResponse(&lists[i], nil))
	}
	commonhandler.WriteJSON(w, http.StatusOK, response)
}

// CreateList answers 200 instead of 201 when the actor's private list
// already existed.
func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req createListRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	var (
		list    *packingdomain.List
		created = true
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(req.ListType)) {
	case "", packingdomain.ListPrivate:
		list, created, err = h.Packing.CreatePrivateList(r.Context(), user.ID, tripID)
	case packingdomain.ListShared:
		list, err = h.Packing.CreateSharedList(r.Context(), user.ID, tripID)
	default:
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "list_type must be private or shared")
		return
	}
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.create_list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	commonhandler.WriteJSON(w, status, toListResponse(list, nil))
}

func (h *Handlers) GetList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	listID := chi.URLParam(r, "list_id")
	list, err := h.Packing.GetList(r.Context(), user.ID, listID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.get_list", err, "user_id", user.ID, "list_id", listID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toListResponse(&list.List, itemsOrEmpty(list.Items)))
}

func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	listID := chi.URLParam(r, "list_id")
	if err := h.Packing.DeleteList(r.Context(), user.ID, listID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.delete_list", err, "user_id", user.ID, "list_id", listID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	listID := chi.URLParam(r, "list_id")
	item, err := h.Packing.AddItem(r.Context(), user.ID, listID, packingdomain.ItemInput{Name: req.Name, Quantity: req.Quantity})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.create_item", err, "user_id", user.ID, "list_id", listID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	item, err := h.Packing.UpdateItem(r.Context(), user.ID, packingdomain.UpdateItemInput{
		ID:       itemID,
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.update_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handlers) SetItemPacked(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req setPackedRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil || req.IsPacked == nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "is_packed is required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	item, err := h.Packing.SetItemPacked(r.Context(), user.ID, itemID, *req.IsPacked)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.set_packed", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if err := h.Packing.DeleteItem(r.Context(), user.ID, itemID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.delete_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func toListResponse(list *packingdomain.List, items []packingdomain.Item) listResponse {
	response := listResponse{
		ID:        list.ID,
		TripID:    list.TripID,
		ListType:  list.ListType,
		UserID:    list.UserID,
		CreatedAt: list.CreatedAt,
	}
	if items != nil {
		converted := make([]itemResponse, 0, len(items))
		for i := range items {
			converted = append(converted, toItemResponse(&items[i]))
		}
		response.Items = &converted
	}
	return response
}

func toItemResponse(item *packingdomain.Item) itemResponse {
	return itemResponse{
		ID:           item.ID,
		ListID:       item.ListID,
		ItemName:     item.ItemName,
		ItemQuantity: item.ItemQuantity,
		IsPacked:     item.IsPacked,
		AddedBy:      item.AddedBy,
		PackedBy:     item.PackedBy,
		CreatedAt:    item.CreatedAt,
	}
}

func itemsOrEmpty(items []packingdomain.Item) []packingdomain.Item {
	if items == nil {
		return []packingdomain.Item{}
	}
	return items
}
