package checkout

import (
	"errors"
	"net/http"
	"strconv"

	"webify-be/internal/transport"
	"webify-be/internal/utils"

	"github.com/julienschmidt/httprouter"
)

const sessionHeader = "X-Session-ID"

// Handler exposes the snapshot stash over HTTP so the frontend can park a
// half-filled shipping form across a login redirect and pick it up after.
type Handler struct {
	snapshots *SnapshotStore
}

func NewHandler(snapshots *SnapshotStore) *Handler {
	return &Handler{snapshots: snapshots}
}

func (h *Handler) SaveSnapshot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID, ok := resolveSessionID(r)
	if !ok {
		transport.RespondWithError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}

	var form ShippingForm
	if err := transport.DecodeJSON(r, &form); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.snapshots.Save(r.Context(), sessionID, form); err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to save snapshot")
		return
	}

	transport.RespondWithJSON(w, http.StatusCreated, transport.M{"detail": "Snapshot saved."})
}

// RestoreSnapshot hands the stashed form back and deletes it. A second call
// for the same session finds nothing.
func (h *Handler) RestoreSnapshot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID, ok := resolveSessionID(r)
	if !ok {
		transport.RespondWithError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}

	form, err := h.snapshots.Restore(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to restore snapshot")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, form)
}

// resolveSessionID prefers the explicit header so a snapshot saved before
// login is still reachable after; authenticated users without one fall back
// to a key derived from their identity.
func resolveSessionID(r *http.Request) (string, bool) {
	if sid := r.Header.Get(sessionHeader); sid != "" {
		return sid, true
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + strconv.FormatUint(uint64(userID), 10), true
	}
	return "", false
}
