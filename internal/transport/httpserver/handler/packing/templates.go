package packing

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	packingdomain "trip-planner-go/internal/domain/packing"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
)

type templateNameRequest struct {
	Name string `json:"name"`
}

type applyTemplateRequest struct {
	TripID string `json:"trip_id"`
}

type templateItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type updateTemplateItemRequest struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
}

type templateResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	CreatedAt time.Time               `json:"created_at"`
	Items     *[]templateItemResponse `json:"items,omitempty"`
}

type templateListResponse struct {
	Items []templateResponse `json:"items"`
}

type templateItemResponse struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

func (h *Handlers) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req templateNameRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	listID := chi.URLParam(r, "list_id")
	template, err := h.Packing.SaveAsTemplate(r.Context(), user.ID, listID, req.Name)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.save_template", err, "user_id", user.ID, "list_id", listID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusCreated, toTemplateResponse(&template.Template, templateItemsOrEmpty(template.Items)))
}

func (h *Handlers) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req applyTemplateRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil || req.TripID == "" {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "trip_id is required")
		return
	}

	templateID := chi.URLParam(r, "template_id")
	list, err := h.Packing.ApplyTemplate(r.Context(), user.ID, templateID, req.TripID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.apply_template", err, "user_id", user.ID, "template_id", templateID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toListResponse(&list.List, itemsOrEmpty(list.Items)))
}

func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	templates, err := h.Packing.ListTemplates(r.Context(), user.ID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.list_templates", err, "user_id", user.ID)
		return
	}

	response := templateListResponse{Items: make([]templateResponse, 0, len(templates))}
	for i := range templates {
		response.Items = append(response.Items, toTemplateResponse(&templates[i], nil))
	}
	commonhandler.WriteJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req templateNameRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	template, err := h.Packing.CreateTemplate(r.Context(), user.ID, req.Name)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.create_template", err, "user_id", user.ID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusCreated, toTemplateResponse(template, nil))
}

func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	templateID := chi.URLParam(r, "template_id")
	template, err := h.Packing.GetTemplate(r.Context(), user.ID, templateID)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.get_template", err, "user_id", user.ID, "template_id", templateID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toTemplateResponse(&template.Template, templateItemsOrEmpty(template.Items)))
}

func (h *Handlers) RenameTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req templateNameRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	templateID := chi.URLParam(r, "template_id")
	template, err := h.Packing.RenameTemplate(r.Context(), user.ID, templateID, req.Name)
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.rename_template", err, "user_id", user.ID, "template_id", templateID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toTemplateResponse(template, nil))
}

func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	templateID := chi.URLParam(r, "template_id")
	if err := h.Packing.DeleteTemplate(r.Context(), user.ID, templateID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.delete_template", err, "user_id", user.ID, "template_id", templateID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func (h *Handlers) CreateTemplateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req templateItemRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	templateID := chi.URLParam(r, "template_id")
	item, err := h.Packing.AddTemplateItem(r.Context(), user.ID, templateID, packingdomain.ItemInput{Name: req.Name, Quantity: req.Quantity})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.create_template_item", err, "user_id", user.ID, "template_id", templateID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusCreated, toTemplateItemResponse(item))
}

func (h *Handlers) UpdateTemplateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	var req updateTemplateItemRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	item, err := h.Packing.UpdateTemplateItem(r.Context(), user.ID, packingdomain.UpdateItemInput{
		ID:       itemID,
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.update_template_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteJSON(w, http.StatusOK, toTemplateItemResponse(item))
}

func (h *Handlers) DeleteTemplateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := commonhandler.RequireUser(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if err := h.Packing.DeleteTemplateItem(r.Context(), user.ID, itemID); err != nil {
		commonhandler.WriteServiceError(w, h.log, "packing.delete_template_item", err, "user_id", user.ID, "item_id", itemID)
		return
	}
	commonhandler.WriteNoContent(w)
}

func toTemplateResponse(template *packingdomain.Template, items []packingdomain.TemplateItem) templateResponse {
	response := templateResponse{
		ID:        template.ID,
		Name:      template.Name,
		CreatedAt: template.CreatedAt,
	}
	if items != nil {
		converted := make([]templateItemResponse, 0, len(items))
		for i := range items {
			converted = append(converted, toTemplateItemResponse(&items[i]))
		}
		response.Items = &converted
	}
	return response
}

func toTemplateItemResponse(item *packingdomain.TemplateItem) templateItemResponse {
	return templateItemResponse{
		ID:         item.ID,
		TemplateID: item.TemplateID,
		Name:       item.Name,
		Quantity:   item.Quantity,
	}
}

func templateItemsOrEmpty(items []packingdomain.TemplateItem) []packingdomain.TemplateItem {
	if items == nil {
		return []packingdomain.TemplateItem{}
	}
	return items
}
