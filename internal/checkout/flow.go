package checkout

import (
	"context"
	"log/slog"
	"sync/atomic"

	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/models"
	"github.com/mangazone/storefront/pkg/stripe"
)

// PaymentAPI is the slice of the remote client the flow uses.
type PaymentAPI interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (*models.PaymentIntent, error)
	PlaceOrder(ctx context.Context, amount float64, paymentIntentID string) (*models.Order, error)
	PlaceDirectOrder(ctx context.Context, mangaID string, qty int, amount float64, paymentIntentID string) (*models.Order, error)
}

type State int

const (
	StateAwaitingInput State = iota
	StateSubmitting
	StateSucceeded
	// StateFailed keeps the view interactive: the provider's message
	// is shown and Submit may be called again with corrected input.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mode selects between settling the whole cart and a direct buy that
// bypassed it.
type Mode struct {
	directBuy bool
	mangaID   string
	qty       int
}

func CartCheckout() Mode {
	return Mode{}
}

func DirectBuy(mangaID string, qty int) Mode {
	if qty < 1 {
		qty = 1
	}

	return Mode{directBuy: true, mangaID: mangaID, qty: qty}
}

// Flow drives one checkout attempt: request a payment intent, confirm
// it with the provider, and on success place the order. Every submit
// requests a fresh intent, so a retry after failure never reuses a
// stale client secret.
type Flow struct {
	api        PaymentAPI
	provider   stripe.Confirmer
	state      State
	lastErr    string
	submitting atomic.Bool
}

func NewFlow(api PaymentAPI, provider stripe.Confirmer) *Flow {
	return &Flow{api: api, provider: provider, state: StateAwaitingInput}
}

func (f *Flow) State() State {
	return f.state
}

// LastError is the message shown next to the card input after a
// failed submit; provider messages are passed through verbatim.
func (f *Flow) LastError() string {
	return f.lastErr
}

// Submit runs one payment attempt. A second call while one is in
// flight fails fast without creating another intent.
func (f *Flow) Submit(ctx context.Context, amount float64, card models.Card, mode Mode) error {

	if !f.submitting.CompareAndSwap(false, true) {
		return appErrors.BadRequestError("A payment is already in progress")
	}

	defer f.submitting.Store(false)

	if amount <= 0 {
		return f.fail(appErrors.BadRequestError("Nothing to pay"))
	}

	f.state = StateSubmitting
	f.lastErr = ""

	intent, err := f.api.CreatePaymentIntent(ctx, amount)
	if err != nil {
		return f.fail(appErrors.APIError("Failed to start payment").WithError(err))
	}

	confirmation, err := f.provider.Confirm(ctx, intent.ClientSecret, card.Number, card.ExpMonth, card.ExpYear, card.CVC)
	if err != nil {
		return f.fail(appErrors.PaymentError(err.Error()))
	}

	if confirmation.Status != stripe.StatusSucceeded {
		return f.fail(appErrors.PaymentError("Payment not completed: " + confirmation.Status))
	}

	var order *models.Order

	if mode.directBuy {
		order, err = f.api.PlaceDirectOrder(ctx, mode.mangaID, mode.qty, amount, confirmation.PaymentIntentID)
	} else {
		order, err = f.api.PlaceOrder(ctx, amount, confirmation.PaymentIntentID)
	}

	if err != nil {
		// The charge went through but the order record did not; keep
		// the intent id in the log for manual reconciliation.
		slog.Error("Order placement failed after successful payment",
			slog.String("paymentIntentId", confirmation.PaymentIntentID),
			slog.String("error", err.Error()))

		return f.fail(appErrors.APIError("Payment succeeded but order placement failed").WithError(err))
	}

	slog.Info("Order placed",
		slog.String("orderId", order.ID),
		slog.String("paymentIntentId", confirmation.PaymentIntentID))

	f.state = StateSucceeded

	return nil
}

func (f *Flow) fail(err *appErrors.AppError) error {
	f.state = StateFailed
	f.lastErr = err.Message

	return err
}
