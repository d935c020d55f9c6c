package payment

import (
	"context"
	"errors"

	"webify-be/internal/logger"
	"webify-be/internal/relay"

	"go.uber.org/zap"
)

type HandoffState string

const (
	HandoffIdle           HandoffState = "idle"
	HandoffSessionCreated HandoffState = "session_created"
	HandoffFrameOpen      HandoffState = "frame_open"
	HandoffConfirmed      HandoffState = "confirmed"
	HandoffFailed         HandoffState = "failed"
)

var (
	ErrWrongHandoffState = errors.New("operation not allowed in current handoff state")
	ErrOrderMismatch     = errors.New("result does not match the handed-off order")
)

// CartClearer is the slice of the cart synchronizer the handoff needs once a
// payment settles.
type CartClearer interface {
	ClearAll(ctx context.Context, userID uint)
}

// HandoffResult is what the gateway reports when the visitor comes back.
type HandoffResult struct {
	Success       bool
	OrderID       uint
	TransactionID string
}

// Handoff walks one payment attempt through the hosted gateway frame. State
// only moves forward: a session is created, the frame opens, and the attempt
// settles as confirmed or failed. Transfer state crosses the redirect via
// the relay store, which enforces consume-once.
type Handoff struct {
	svc       Service
	relay     *relay.Store
	cart      CartClearer
	sessionID string

	state   HandoffState
	orderID uint
}

func NewHandoff(svc Service, relayStore *relay.Store, cart CartClearer, sessionID string) *Handoff {
	return &Handoff{
		svc:       svc,
		relay:     relayStore,
		cart:      cart,
		sessionID: sessionID,
		state:     HandoffIdle,
	}
}

func (h *Handoff) State() HandoffState {
	return h.state
}

// Begin creates the gateway session for an order and stashes the transfer
// record the return leg will redeem.
func (h *Handoff) Begin(ctx context.Context, userID, orderID uint) (*Session, error) {
	if h.state != HandoffIdle {
		return nil, ErrWrongHandoffState
	}

	session, err := h.svc.CreateSession(ctx, userID, CreateSessionParams{OrderID: orderID})
	if err != nil {
		return nil, err
	}

	err = h.relay.Stash(ctx, h.sessionID, relay.TransferRecord{
		OrderID:    orderID,
		PaymentID:  session.PaymentID,
		PaymentKey: session.PaymentKey,
	})
	if err != nil {
		return nil, err
	}

	h.state = HandoffSessionCreated
	h.orderID = orderID

	return session, nil
}

// OpenFrame marks the hosted frame as shown to the visitor.
func (h *Handoff) OpenFrame() error {
	if h.state != HandoffSessionCreated {
		return ErrWrongHandoffState
	}
	h.state = HandoffFrameOpen
	return nil
}

// Complete settles the attempt from the gateway's redirect-back result. The
// stashed transfer record is redeemed exactly once and its order must match
// the result's. A failed result never confirms the payment and never clears
// the cart.
func (h *Handoff) Complete(ctx context.Context, userID uint, result HandoffResult) error {
	if h.state != HandoffFrameOpen {
		return ErrWrongHandoffState
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "handoff"),
		zap.Uint("order_id", result.OrderID),
		zap.Bool("success", result.Success),
	)

	record, err := h.relay.Redeem(ctx, h.sessionID)
	if err != nil {
		return err
	}
	if record.OrderID != result.OrderID {
		log.Warn("order mismatch on handoff return",
			zap.Uint("stashed_order_id", record.OrderID),
		)
		return ErrOrderMismatch
	}

	if !result.Success {
		h.state = HandoffFailed
		if err := h.svc.Confirm(ctx, userID, ConfirmParams{
			PaymentID:     record.PaymentID,
			TransactionID: result.TransactionID,
			Status:        StatusFailed,
		}); err != nil {
			log.Warn("failed payment could not be recorded", zap.Error(err))
		}
		return nil
	}

	if err := h.svc.Confirm(ctx, userID, ConfirmParams{
		PaymentID:     record.PaymentID,
		TransactionID: result.TransactionID,
		Status:        StatusPaid,
	}); err != nil {
		return err
	}

	h.cart.ClearAll(ctx, userID)
	h.state = HandoffConfirmed

	log.Info("payment handoff confirmed", zap.Uint("payment_id", record.PaymentID))

	return nil
}
