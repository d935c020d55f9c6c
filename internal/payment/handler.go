package payment

import (
	"errors"
	"io"
	"net/http"

	"webify-be/internal/transport"
	"webify-be/internal/utils"

	"github.com/julienschmidt/httprouter"
)

const signatureHeader = "X-Paymob-Signature"

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var params CreateSessionParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if params.OrderID == 0 {
		transport.RespondWithError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	session, err := h.svc.CreateSession(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusBadGateway, "failed to create payment session")
		return
	}

	transport.RespondWithJSON(w, http.StatusCreated, session)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var params ConfirmParams
	if err := transport.DecodeJSON(r, &params); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.svc.Confirm(r.Context(), userID, params); err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidStatus):
			transport.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			transport.RespondWithError(w, http.StatusInternalServerError, "failed to confirm payment")
		}
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, transport.M{"detail": "Payment updated."})
}

// Webhook is unauthenticated; the signature header is the only credential.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := h.svc.ProcessWebhook(r.Context(), body, r.Header.Get(signatureHeader)); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			transport.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		transport.RespondWithError(w, http.StatusBadRequest, "Error processing event")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, transport.M{"detail": "Webhook processed"})
}

// RedirectResult bounces the visitor from the gateway's redirect back to the
// frontend result page, carrying the outcome in the query string.
func (h *Handler) RedirectResult(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	success := q.Get("success")
	if success == "" {
		success = "false"
	}

	target := h.svc.RedirectResult(success, q.Get("id"), q.Get("order"))
	http.Redirect(w, r, target, http.StatusFound)
}
