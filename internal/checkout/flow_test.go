package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mangazone/storefront/internal/checkout"
	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/models"
	"github.com/mangazone/storefront/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPaymentAPI struct {
	mock.Mock
}

func (m *mockPaymentAPI) CreatePaymentIntent(ctx context.Context, amount float64) (*models.PaymentIntent, error) {
	args := m.Called(ctx, amount)

	if intent, ok := args.Get(0).(*models.PaymentIntent); ok {
		return intent, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentAPI) PlaceOrder(ctx context.Context, amount float64, paymentIntentID string) (*models.Order, error) {
	args := m.Called(ctx, amount, paymentIntentID)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentAPI) PlaceDirectOrder(ctx context.Context, mangaID string, qty int, amount float64, paymentIntentID string) (*models.Order, error) {
	args := m.Called(ctx, mangaID, qty, amount, paymentIntentID)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

// fakeConfirmer scripts the provider's answer; Hook, when set, runs
// mid-confirmation to exercise the re-entry guard.
type fakeConfirmer struct {
	confirmation *stripe.Confirmation
	err          error
	calls        int
	lastSecret   string
	Hook         func()
}

func (f *fakeConfirmer) Confirm(ctx context.Context, clientSecret, cardNumber, cardExpMonth, cardExpYear, cardCVC string) (*stripe.Confirmation, error) {
	f.calls++
	f.lastSecret = clientSecret

	if f.Hook != nil {
		f.Hook()
	}

	return f.confirmation, f.err
}

func testCard() models.Card {
	return models.Card{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"}
}

func TestSubmitCartCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Exactly One Order With The Confirmed Intent", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{confirmation: &stripe.Confirmation{PaymentIntentID: "pi_1", Status: "succeeded"}}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_1_secret_x", Amount: 500}, nil).Once()
		mockAPI.On("PlaceOrder", ctx, 500.0, "pi_1").Return(&models.Order{ID: "o1", Amount: 500}, nil).Once()

		// Act
		err := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, checkout.StateSucceeded, flow.State())
		assert.Equal(t, 1, confirmer.calls)
		assert.Equal(t, "pi_1_secret_x", confirmer.lastSecret)
		mockAPI.AssertNumberOfCalls(t, "PlaceOrder", 1)
		mockAPI.AssertNotCalled(t, "PlaceDirectOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Provider Error - No Order, Message Verbatim, Retryable", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{err: errors.New("Your card was declined.")}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_1_secret_x", Amount: 500}, nil).Once()

		// Act
		err := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		// Assert
		assert.Error(t, err)
		assert.Equal(t, checkout.StateFailed, flow.State())
		assert.Equal(t, "Your card was declined.", flow.LastError())
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePayment, appErr.Code)
		mockAPI.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Retry After Failure Requests A Fresh Intent", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{err: errors.New("declined")}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_1_secret_a", Amount: 500}, nil).Once()
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_2_secret_b", Amount: 500}, nil).Once()
		mockAPI.On("PlaceOrder", ctx, 500.0, "pi_2").Return(&models.Order{ID: "o1"}, nil).Once()

		// Act
		firstErr := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		confirmer.err = nil
		confirmer.confirmation = &stripe.Confirmation{PaymentIntentID: "pi_2", Status: "succeeded"}

		secondErr := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		// Assert
		assert.Error(t, firstErr)
		assert.NoError(t, secondErr)
		assert.Equal(t, "pi_2_secret_b", confirmer.lastSecret)
		assert.Equal(t, 2, confirmer.calls)
		mockAPI.AssertNumberOfCalls(t, "CreatePaymentIntent", 2)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Non-Succeeded Status - No Order Placed", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{confirmation: &stripe.Confirmation{PaymentIntentID: "pi_1", Status: "requires_action"}}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_1_secret_x", Amount: 500}, nil).Once()

		// Act
		err := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		// Assert
		assert.Error(t, err)
		assert.Equal(t, checkout.StateFailed, flow.State())
		mockAPI.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Zero Amount Fails Fast Without An Intent", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{}
		flow := checkout.NewFlow(mockAPI, confirmer)

		// Act
		err := flow.Submit(ctx, 0, testCard(), checkout.CartCheckout())

		// Assert
		assert.Error(t, err)
		assert.Equal(t, 0, confirmer.calls)
		mockAPI.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Re-Entry While Submitting Fails Fast", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{confirmation: &stripe.Confirmation{PaymentIntentID: "pi_1", Status: "succeeded"}}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 500.0).Return(&models.PaymentIntent{ClientSecret: "pi_1_secret_x", Amount: 500}, nil).Once()
		mockAPI.On("PlaceOrder", ctx, 500.0, "pi_1").Return(&models.Order{ID: "o1"}, nil).Once()

		var reentrantErr error

		confirmer.Hook = func() {
			reentrantErr = flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())
		}

		// Act
		err := flow.Submit(ctx, 500, testCard(), checkout.CartCheckout())

		// Assert
		assert.NoError(t, err)
		assert.Error(t, reentrantErr)
		appErr, ok := appErrors.IsAppError(reentrantErr)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		// Only the outer submit reached the server.
		mockAPI.AssertNumberOfCalls(t, "CreatePaymentIntent", 1)
		mockAPI.AssertExpectations(t)
	})
}

func TestSubmitDirectBuy(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Direct Order Carries Book And Quantity", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{confirmation: &stripe.Confirmation{PaymentIntentID: "pi_9", Status: "succeeded"}}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 360.0).Return(&models.PaymentIntent{ClientSecret: "pi_9_secret_x", Amount: 360}, nil).Once()
		mockAPI.On("PlaceDirectOrder", ctx, "m1", 2, 360.0, "pi_9").Return(&models.Order{ID: "o2"}, nil).Once()

		// Act
		err := flow.Submit(ctx, 360, testCard(), checkout.DirectBuy("m1", 2))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, checkout.StateSucceeded, flow.State())
		mockAPI.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Order Placement Failure Surfaces After Payment", func(t *testing.T) {
		// Arrange
		mockAPI := new(mockPaymentAPI)
		confirmer := &fakeConfirmer{confirmation: &stripe.Confirmation{PaymentIntentID: "pi_9", Status: "succeeded"}}
		flow := checkout.NewFlow(mockAPI, confirmer)
		mockAPI.On("CreatePaymentIntent", ctx, 360.0).Return(&models.PaymentIntent{ClientSecret: "pi_9_secret_x", Amount: 360}, nil).Once()
		mockAPI.On("PlaceDirectOrder", ctx, "m1", 1, 360.0, "pi_9").Return(nil, errors.New("500")).Once()

		// Act
		err := flow.Submit(ctx, 360, testCard(), checkout.DirectBuy("m1", 1))

		// Assert
		assert.Error(t, err)
		assert.Equal(t, checkout.StateFailed, flow.State())
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeAPI, appErr.Code)
		mockAPI.AssertExpectations(t)
	})
}
