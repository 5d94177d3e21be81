package handler

import (
	"net/http"

	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/shoppinglist"
)

// AddListItemRequest adds quantity units of item to a shopping list
type AddListItemRequest struct {
	Item     string `json:"item" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"min=1,max=1000000"`
}

// SessionResponse returns a newly created session
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// ListResponse wraps a shopping list with an optional status message
type ListResponse struct {
	Message string               `json:"message,omitempty"`
	List    *domain.ShoppingList `json:"list"`
}

type ListHandler struct {
	service shoppinglist.Service
}

func NewListHandler(service shoppinglist.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleCreate starts a new shopping list session
func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.NewSession(r.Context())
	if err != nil {
		respondServiceError(w, r, "Create list", err)
		return
	}
	respondJSON(w, http.StatusCreated, SessionResponse{SessionID: id})
}

// HandleGet returns the list for a session
func (h *ListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}

	list, err := h.service.Get(r.Context(), session)
	if err != nil {
		respondServiceError(w, r, "Get list", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{List: list})
}

// HandleAddItem adds to or creates an entry
func (h *ListHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}

	var req AddListItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add list item"); err != nil {
		return
	}

	list, err := h.service.Add(r.Context(), session, req.Item, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Add list item", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Message: MsgItemAddedSuccess, List: list})
}

// HandleRemoveItem drops one entry from the list
func (h *ListHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}
	item, ok := GetPathParam(r, w, "item")
	if !ok {
		return
	}

	list, err := h.service.Remove(r.Context(), session, item)
	if err != nil {
		respondServiceError(w, r, "Remove list item", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Message: MsgItemRemovedSuccess, List: list})
}

// HandleClear empties the list
func (h *ListHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), session); err != nil {
		respondServiceError(w, r, "Clear list", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListClearedSuccess})
}

// HandleDelete ends the session
func (h *ListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), session); err != nil {
		respondServiceError(w, r, "Delete list", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListDeletedSuccess})
}

// HandleCalculate totals the whole list
func (h *ListHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	session, ok := GetPathParam(r, w, "session")
	if !ok {
		return
	}

	res, err := h.service.Calculate(r.Context(), session)
	if err != nil {
		respondServiceError(w, r, "Calculate list", err)
		return
	}
	respondJSON(w, http.StatusOK, newCalculationResponse(res))
}
