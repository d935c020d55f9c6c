package user

import (
	"errors"
	"net/http"

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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var params RegisterParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if params.Email == "" || params.Password == "" {
		transport.RespondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			transport.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	transport.RespondWithJSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var params LoginParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	u, pair, err := h.svc.Login(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			transport.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, transport.M{
		"user":    u,
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := transport.DecodeJSON(r, &body); err != nil || body.Refresh == "" {
		transport.RespondWithError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	pair, err := h.svc.Refresh(r.Context(), body.Refresh)
	if err != nil {
		transport.RespondWithError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, pair)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, u)
}
