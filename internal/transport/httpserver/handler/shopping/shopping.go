package shopping

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	shoppingdomain "trip-planner-go/internal/domain/shopping"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

type itemRequest struct {
	Name     string `json:"item_name"`
	Quantity int    `json:"item_quantity"`
}

type updateItemRequest struct {
	Name     *string `json:"item_name"`
	Quantity *int    `json:"item_quantity"`
}

type setPurchasedRequest struct {
	IsPurchased *bool `json:"is_purchased"`
}

type listResponse struct {
	ID        string         `json:"id"`
	TripID    string         `json:"trip_id"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []itemResponse `json:"items"`
}

type itemResponse struct {
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"`
	ItemName     string    `json:"item_name"`
	ItemQuantity int       `json:"item_quantity"`
	IsPurchased  bool      `json:"is_purchased"`
	AddedBy      *string   `json:"added_by"`
	PurchasedBy  *string   `json:"purchased_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handlers) GetTripList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	list, err := h.Shopping.GetListForTrip(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.get_trip_list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toListResponse(&list.List, list.Items))
}

// CreateList answers 200 with the existing list when the trip already has one.
func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	list, created, err := h.Shopping.CreateList(r.Context(), user.ID, tripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.create_list", err, "user_id", user.ID, "trip_id", tripID)
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
	list, err := h.Shopping.GetList(r.Context(), user.ID, listID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.get_list", err, "user_id", user.ID, "list_id", listID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toListResponse(&list.List, list.Items))
}

func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	listID := chi.URLParam(r, "list_id")
	if err := h.Shopping.DeleteList(r.Context(), user.ID, listID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.delete_list", err, "user_id", user.ID, "list_id", listID)
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
	item, err := h.Shopping.AddItem(r.Context(), user.ID, listID, shoppingdomain.ItemInput{Name: req.Name, Quantity: req.Quantity})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.create_item", err, "user_id", user.ID, "list_id", listID)
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
	item, err := h.Shopping.UpdateItem(r.Context(), user.ID, shoppingdomain.UpdateItemInput{
		ID:       itemID,
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.update_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handlers) SetItemPurchased(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req setPurchasedRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil || req.IsPurchased == nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "is_purchased is required")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	item, err := h.Shopping.SetItemPurchased(r.Context(), user.ID, itemID, *req.IsPurchased)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.set_purchased", err, "user_id", user.ID, "item_id", itemID)
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
	if err := h.Shopping.DeleteItem(r.Context(), user.ID, itemID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "shopping.delete_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func toListResponse(list *shoppingdomain.List, items []shoppingdomain.Item) listResponse {
	response := listResponse{
		ID:        list.ID,
		TripID:    list.TripID,
		CreatedAt: list.CreatedAt,
		Items:     make([]itemResponse, 0, len(items)),
	}
	for i := range items {
		response.Items = append(response.Items, toItemResponse(&items[i]))
	}
	return response
}

func toItemResponse(item *shoppingdomain.Item) itemResponse {
	return itemResponse{
		ID:           item.ID,
		ListID:       item.ListID,
		ItemName:     item.ItemName,
		ItemQuantity: item.ItemQuantity,
		IsPurchased:  item.IsPurchased,
		AddedBy:      item.AddedBy,
		PurchasedBy:  item.PurchasedBy,
		CreatedAt:    item.CreatedAt,
	}
}
