package cart

import (
	"context"
	"log/slog"

	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/models"
)

// CartAPI is the slice of the remote client the reconciler uses.
type CartAPI interface {
	CartItems(ctx context.Context) ([]models.CartLine, error)
	AddCartItem(ctx context.Context, mangaID string, quantity int) error
	RemoveCartItem(ctx context.Context, mangaID string) error
	RemoveCartLine(ctx context.Context, mangaID string) error
	GetBook(ctx context.Context, id string) (*models.Book, error)
}

type State int

const (
	StateIdle State = iota
	StateRefreshing
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRefreshing:
		return "refreshing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

type Direction int

const (
	Increment Direction = iota
	Decrement
)

// Reconciler owns the client-side view of the shopping cart. It never
// mutates its snapshot locally: every change goes to the server and is
// followed by a full refetch, so the displayed lines and total are
// always a pure function of the server's current truth. On a failed
// refresh the prior snapshot stays visible.
//
// Intended for single-goroutine use, matching the event-driven view it
// replaces.
type Reconciler struct {
	api   CartAPI
	state State
	lines []models.CartLine
	total float64
}

func NewReconciler(api CartAPI) *Reconciler {
	return &Reconciler{api: api, state: StateIdle}
}

func (r *Reconciler) State() State {
	return r.state
}

// Lines is the last successfully fetched snapshot.
func (r *Reconciler) Lines() []models.CartLine {
	return r.lines
}

// Total is the discounted sum over the snapshot, recomputed on every
// refresh and never stored independently of its inputs.
func (r *Reconciler) Total() float64 {
	return r.total
}

// Refresh fetches the cart lines, enriches rows that came back without
// book detail, and recomputes the total. This is the only path that
// updates the displayed state.
func (r *Reconciler) Refresh(ctx context.Context) error {

	r.state = StateRefreshing

	lines, err := r.api.CartItems(ctx)
	if err != nil {
		r.state = StateError

		return appErrors.APIError("Failed to fetch cart").WithError(err)
	}

	for i := range lines {

		if lines[i].Manga != nil || lines[i].MangaID == "" {
			continue
		}

		book, err := r.api.GetBook(ctx, lines[i].MangaID)
		if err != nil {
			// Line stays visible without a price and is left out of
			// the total until a later refresh resolves it.
			slog.Warn("Could not resolve cart line book",
				slog.String("mangaId", lines[i].MangaID),
				slog.String("error", err.Error()))

			continue
		}

		lines[i].Manga = book
	}

	r.lines = lines
	r.total = computeTotal(lines)
	r.state = StateIdle

	return nil
}

// ChangeQuantity issues an add-one or remove-one against the server,
// then refreshes unconditionally. Overlapping calls are not
// deduplicated: refresh re-derives everything from the server, so the
// last one wins regardless of interleaving.
func (r *Reconciler) ChangeQuantity(ctx context.Context, mangaID string, dir Direction) error {

	var mutErr error

	switch dir {
	case Increment:
		mutErr = r.api.AddCartItem(ctx, mangaID, 1)
	case Decrement:
		mutErr = r.api.RemoveCartItem(ctx, mangaID)
	default:
		return appErrors.BadRequestError("Unknown quantity direction")
	}

	refreshErr := r.Refresh(ctx)

	if mutErr != nil {
		return appErrors.APIError("Failed to update quantity").WithError(mutErr)
	}

	return refreshErr
}

// ClearAll deletes every line best-effort: a failed or unresolvable
// line is skipped without aborting the sweep, and the follow-up
// refresh reports whatever actually survived.
func (r *Reconciler) ClearAll(ctx context.Context) error {

	for i := range r.lines {

		id := r.lines[i].BookID()

		if id == "" {
			slog.Warn("Skipping cart line without book reference")

			continue
		}

		if err := r.api.RemoveCartLine(ctx, id); err != nil {
			slog.Error("Failed to remove cart line",
				slog.String("mangaId", id),
				slog.String("error", err.Error()))
		}
	}

	return r.Refresh(ctx)
}

// Checkout validates the snapshot and hands back the computed total
// for the payment flow. It fails fast, with no network call, on an
// empty or zero-total cart.
func (r *Reconciler) Checkout() (float64, error) {

	if len(r.lines) == 0 || r.total <= 0 {
		return 0, appErrors.BadRequestError("Cart is empty")
	}

	return r.total, nil
}

func computeTotal(lines []models.CartLine) float64 {

	var total float64

	for i := range lines {
		if lines[i].Manga == nil {
			continue
		}

		total += lines[i].Manga.DiscountedPrice() * float64(lines[i].Quantity)
	}

	return total
}
