package order

import (
	"errors"
	"net/http"
	"strconv"

	"webify-be/internal/cart"
	"webify-be/internal/checkout"
	"webify-be/internal/transport"
	"webify-be/internal/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc     Service
	cartSvc cart.Service
}

func NewHandler(svc Service, cartSvc cart.Service) *Handler {
	return &Handler{svc: svc, cartSvc: cartSvc}
}

type createOrderRequest struct {
	checkout.ShippingForm
	CouponCode string `json:"coupon_code"`
}

// Create places an order from the user's server cart. The cart is cleared in
// the same transaction as the order insert.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := req.ShippingForm.Validate(); err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.cartSvc.GetCart(r.Context(), userID)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if len(c.Items) == 0 {
		transport.RespondWithError(w, http.StatusBadRequest, cart.ErrCartEmpty.Error())
		return
	}

	var coupon *checkout.Coupon
	if req.CouponCode != "" {
		coupon, err = checkout.LookupCoupon(req.CouponCode)
		if err != nil {
			transport.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	items := make([]OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.svc.Create(r.Context(), CreateOrderParams{
		UserID: userID,
		Form:   req.ShippingForm,
		Totals: checkout.ComputeTotals(c.TotalAmount, coupon),
		Items:  items,
	})
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	transport.RespondWithJSON(w, http.StatusCreated, o)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.svc.List(r.Context(), userID)
	if err != nil {
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []*Order{}
	}

	transport.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		transport.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.svc.Get(r.Context(), userID, uint(orderID))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			transport.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		transport.RespondWithError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	transport.RespondWithJSON(w, http.StatusOK, o)
}
