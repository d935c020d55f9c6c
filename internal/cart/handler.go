package cart

import (
	"errors"
	"net/http"
	"strconv"

	"webify-be/internal/transport"
	"webify-be/internal/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, c)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var params AddItemParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if params.ProductID == 0 {
		transport.RespondWithError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	item, err := h.svc.AddItem(r.Context(), userID, params)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to add cart item")
		return
	}

	transport.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itemID, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	var params UpdateItemParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.svc.UpdateItemQuantity(r.Context(), userID, uint(itemID), params.Quantity); err != nil {
		if errors.Is(err, ErrCartItemNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to update cart item")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, transport.M{"status": "ok"})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	itemID, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), userID, uint(itemID)); err != nil {
		if errors.Is(err, ErrCartItemNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Sync replaces the server cart with the payload's items, used by clients
// reconciling a locally mutated cart after login.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Items []AddItemParams `json:"items"`
	}
	if err := transport.DecodeJSON(r, &body); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.svc.ClearCart(r.Context(), userID); err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to sync cart")
		return
	}
	for _, p := range body.Items {
		if _, err := h.svc.AddItem(r.Context(), userID, p); err != nil {
			transport.RespondWithError(w, http.StatusInternalServerError, "failed to sync cart")
			return
		}
	}

	c, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, c)
}
