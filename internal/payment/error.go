package payment

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidStatus      = errors.New("invalid payment status")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
