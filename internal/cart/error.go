package cart

import "errors"

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrUserNotAuthenticated = errors.New("user not authenticated")
)
