package product

import (
	"errors"
	"net/http"
	"strconv"

	"webify-be/internal/transport"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := QueryOptions{}

	q := r.URL.Query()
	if search := q.Get("search"); search != "" {
		opts.Search = &search
	}
	if category := q.Get("category"); category != "" {
		opts.Category = &category
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if v, err := strconv.ParseUint(limitStr, 10, 16); err == nil {
			limit := uint16(v)
			opts.Limit = &limit
		}
	}
	if pageStr := q.Get("page"); pageStr != "" {
		if v, err := strconv.ParseUint(pageStr, 10, 16); err == nil {
			page := uint16(v)
			opts.Page = &page
		}
	}

	products, err := h.svc.GetList(r.Context(), opts)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, products)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.GetByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, p)
}
