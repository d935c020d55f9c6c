package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Step string

const (
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

var (
	ErrCartEmpty        = errors.New("cannot check out an empty cart")
	ErrWrongStep        = errors.New("operation not allowed at this step")
	ErrAlreadyConfirmed = errors.New("checkout already confirmed")
)

type ShippingForm struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Validate reports the first missing required field.
func (f ShippingForm) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}
	if !strings.Contains(f.Email, "@") {
		return errors.New("email is invalid")
	}
	return nil
}

// CartView is the slice of cart state the wizard needs.
type CartView interface {
	IsEmpty() bool
	TotalAmount() decimal.Decimal
}

// Wizard walks a visitor through checkout. Steps only advance through
// SubmitShipping and Confirm, and only retreat through Back; there is no way
// to jump.
type Wizard struct {
	cart   CartView
	step   Step
	form   ShippingForm
	coupon *Coupon
}

func NewWizard(cart CartView) *Wizard {
	return &Wizard{cart: cart, step: StepShipping}
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Form() ShippingForm {
	return w.form
}

// SubmitShipping validates the form and advances to the payment step. An
// empty cart or an invalid form leaves the wizard where it is; the payment
// step is unreachable without something to pay for.
func (w *Wizard) SubmitShipping(form ShippingForm) error {
	if w.step != StepShipping {
		return ErrWrongStep
	}
	if w.cart.IsEmpty() {
		return ErrCartEmpty
	}
	if err := form.Validate(); err != nil {
		return err
	}

	w.form = form
	w.step = StepPayment
	return nil
}

// Back returns from the payment step to the shipping step. The form survives
// so the visitor does not retype it.
func (w *Wizard) Back() error {
	if w.step != StepPayment {
		return ErrWrongStep
	}
	w.step = StepShipping
	return nil
}

// ApplyCoupon attaches a promotion to the order. An unknown code is rejected
// and any previously applied coupon is kept.
func (w *Wizard) ApplyCoupon(code string) error {
	if w.step == StepConfirmed {
		return ErrAlreadyConfirmed
	}
	coupon, err := LookupCoupon(code)
	if err != nil {
		return err
	}
	w.coupon = coupon
	return nil
}

func (w *Wizard) Totals() Totals {
	return ComputeTotals(w.cart.TotalAmount(), w.coupon)
}

// Confirm finalizes the checkout from the payment step. The cart must not be
// empty and a wizard confirms at most once.
func (w *Wizard) Confirm() (ShippingForm, Totals, error) {
	if w.step == StepConfirmed {
		return ShippingForm{}, Totals{}, ErrAlreadyConfirmed
	}
	if w.step != StepPayment {
		return ShippingForm{}, Totals{}, ErrWrongStep
	}
	if w.cart.IsEmpty() {
		return ShippingForm{}, Totals{}, ErrCartEmpty
	}

	w.step = StepConfirmed
	return w.form, w.Totals(), nil
}
