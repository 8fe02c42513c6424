package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mangazone/storefront/internal/api"
	"github.com/mangazone/storefront/internal/cart"
	"github.com/mangazone/storefront/internal/checkout"
	"github.com/mangazone/storefront/internal/config"
	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/models"
	"github.com/mangazone/storefront/internal/render"
	"github.com/mangazone/storefront/internal/session"
	"github.com/mangazone/storefront/internal/telemetry"
	"github.com/mangazone/storefront/pkg/cloudinary"
	"github.com/mangazone/storefront/pkg/stripe"
)

const usage = `usage: storefront <command> [flags]

commands:
  home        featured and trending manga, latest testimonials
  browse      paginated catalog with search and genre filters
  book        one manga's detail and reviews
  random      a random manga pick
  login       sign in and persist the session
  logout      clear the stored session
  register    create an account (uploads the avatar first)
  profile     the signed-in user's info
  review      submit a review for a manga
  cart        show | add | inc | dec | clear
  checkout    pay for the current cart
  buy         direct buy of a single manga
  sell        upload images and publish a new listing
  summary     AI summary of a description
`

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		slog.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Warn("Trace shutdown failed", slog.String("error", err.Error()))
		}
	}()

	store, err := session.NewFileStore(cfg.SessionPath)
	if err != nil {
		slog.Error("Failed to open session store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sess, err := store.Load()
	if err != nil {
		slog.Error("Failed to load session", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &app{
		cfg:       cfg,
		store:     store,
		sess:      sess,
		client:    api.New(cfg.API.BaseURL, sess),
		sanitizer: render.NewSanitizer(),
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		notify(err)
		os.Exit(1)
	}
}

type app struct {
	cfg       *config.Config
	store     session.Store
	sess      *session.Session
	client    *api.Client
	sanitizer *render.Sanitizer
}

func (a *app) run(ctx context.Context, command string, args []string) error {

	switch command {
	case "home":
		return a.home(ctx)
	case "browse":
		return a.browse(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "random":
		return a.random(ctx)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.store.Clear()
	case "register":
		return a.register(ctx, args)
	case "profile":
		return a.profile(ctx)
	case "review":
		return a.review(ctx, args)
	case "cart":
		return a.cart(ctx, args)
	case "checkout":
		return a.checkout(ctx, args)
	case "buy":
		return a.buy(ctx, args)
	case "sell":
		return a.sell(ctx, args)
	case "summary":
		return a.summary(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)

		return appErrors.BadRequestError("Unknown command: " + command)
	}
}

// guard blocks protected commands when no usable token is stored, the
// CLI analog of redirecting a protected view back home.
func (a *app) guard() error {

	if !a.sess.Authenticated() {
		return appErrors.UnauthorizedError("Please sign in first (storefront login)")
	}

	return nil
}

func (a *app) home(ctx context.Context) error {

	featured := a.client.FeaturedBooks(ctx)
	trending := a.client.TrendingBooks(ctx)
	reviews := a.client.ListReviews(ctx)

	fmt.Println("== Featured ==")
	printBooks(featured)

	fmt.Println("== Trending ==")
	printBooks(trending)

	fmt.Println("== Testimonials ==")

	for i := range reviews {
		fmt.Printf("  %s (%d/5): %s\n",
			reviews[i].User.Username, reviews[i].Rating, a.sanitizer.Clean(reviews[i].Comment))
	}

	return nil
}

func (a *app) browse(ctx context.Context, args []string) error {

	flags := flag.NewFlagSet("browse", flag.ExitOnError)
	page := flags.Int("page", 1, "page number")
	limit := flags.Int("limit", 12, "page size")
	search := flags.String("search", "", "title search")
	genre := flags.String("genre", "", "genre filter")
	flags.Parse(args)

	result := a.client.ListBooks(ctx, models.ListBooksParams{
		Page:   *page,
		Limit:  *limit,
		Search: *search,
		Genre:  *genre,
	})

	printBooks(result.Data)
	fmt.Printf("page %d of %d (%d total)\n", *page, result.TotalPages, result.Total)

	return nil
}

func (a *app) book(ctx context.Context, args []string) error {

	if len(args) < 1 {
		return appErrors.BadRequestError("Usage: storefront book <id>")
	}

	book, err := a.client.GetBook(ctx, args[0])
	if err != nil {
		return err
	}

	printBookDetail(book)

	for _, r := range a.client.BookReviews(ctx, book.ID) {
		fmt.Printf("  %s (%d/5): %s\n", r.User.Username, r.Rating, a.sanitizer.Clean(r.Comment))
	}

	return nil
}

func (a *app) random(ctx context.Context) error {

	book, err := a.client.RandomBook(ctx)
	if err != nil {
		return err
	}

	printBookDetail(book)

	return nil
}

func (a *app) login(ctx context.Context, args []string) error {

	flags := flag.NewFlagSet("login", flag.ExitOnError)
	username := flags.String("username", "", "account username")
	password := flags.String("password", "", "account password")
	flags.Parse(args)

	resp, err := a.client.SignIn(ctx, &models.SignInRequest{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}

	if err := a.store.Save(&session.Session{Token: resp.Token, UserID: resp.ID, Role: resp.Role}); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", *username)

	return nil
}

func (a *app) register(ctx context.Context, args []string) error {

	flags := flag.NewFlagSet("register", flag.ExitOnError)
	username := flags.String("username", "", "account username")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	avatar := flags.String("avatar", "", "path to an avatar image")
	flags.Parse(args)

	uploader := cloudinary.NewUploader(a.cfg.Cloudinary.CloudName, a.cfg.Cloudinary.UploadPreset)

	avatarURL, err := uploader.UploadFile(ctx, *avatar)
	if err != nil {
		return appErrors.UploadError("Failed to upload avatar").WithError(err)
	}

	user, err := a.client.SignUp(ctx, &models.SignUpRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		Avatar:   avatarURL,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s; sign in with storefront login\n", user.Username)

	return nil
}

func (a *app) profile(ctx context.Context) error {

	if err := a.guard(); err != nil {
		return err
	}

	user, err := a.client.UserInfo(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s> role=%s\n", user.Username, user.Email, user.Role)

	return nil
}

func (a *app) review(ctx context.Context, args []string) error {

	if err := a.guard(); err != nil {
		return err
	}

	flags := flag.NewFlagSet("review", flag.ExitOnError)
	book := flags.String("book", "", "manga id")
	rating := flags.Int("rating", 0, "rating 1-5")
	comment := flags.String("comment", "", "review text")
	flags.Parse(args)

	err := a.client.SubmitReview(ctx, &models.SubmitReviewRequest{
		MangaID: *book,
		Rating:  *rating,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	fmt.Println("Review submitted")

	return nil
}

func (a *app) cart(ctx context.Context, args []string) error {

	if err := a.guard(); err != nil {
		return err
	}

	reconciler := cart.NewReconciler(a.client)

	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "show":
		if err := reconciler.Refresh(ctx); err != nil {
			return err
		}

	case "add":
		if len(args) < 2 {
			return appErrors.BadRequestError("Usage: storefront cart add <id> [qty]")
		}

		qty := 1

		if len(args) > 2 {
			parsed, err := strconv.Atoi(args[2])
			if err != nil || parsed < 1 {
				return appErrors.BadRequestError("Quantity must be a positive number")
			}

			qty = parsed
		}

		if err := a.client.AddCartItem(ctx, args[1], qty); err != nil {
			return err
		}

		if err := reconciler.Refresh(ctx); err != nil {
			return err
		}

	case "inc", "dec":
		if len(args) < 2 {
			return appErrors.BadRequestError("Usage: storefront cart " + action + " <id>")
		}

		dir := cart.Increment
		if action == "dec" {
			dir = cart.Decrement
		}

		if err := reconciler.ChangeQuantity(ctx, args[1], dir); err != nil {
			return err
		}

	case "clear":
		if err := reconciler.Refresh(ctx); err != nil {
			return err
		}

		if err := reconciler.ClearAll(ctx); err != nil {
			return err
		}

	default:
		return appErrors.BadRequestError("Unknown cart action: " + action)
	}

	printCart(reconciler)

	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {

	if err := a.guard(); err != nil {
		return err
	}

	card, err := parseCard(args)
	if err != nil {
		return err
	}

	reconciler := cart.NewReconciler(a.client)

	if err := reconciler.Refresh(ctx); err != nil {
		return err
	}

	amount, err := reconciler.Checkout()
	if err != nil {
		return err
	}

	flow := checkout.NewFlow(a.client, stripe.NewClient(a.cfg.Stripe.PublishableKey))

	if err := flow.Submit(ctx, amount, card, checkout.CartCheckout()); err != nil {
		return err
	}

	fmt.Printf("Payment of Rs %.0f successful, order placed\n", amount)

	return nil
}

func (a *app) buy(ctx context.Context, args []string) error {

	if err := a.guard(); err != nil {
		return err
	}

	flags := flag.NewFlagSet("buy", flag.ExitOnError)
	id := flags.String("book", "", "manga id")
	qty := flags.Int("qty", 1, "quantity")
	cardFlags := cardFlagSet(flags)
	flags.Parse(args)

	book, err := a.client.GetBook(ctx, *id)
	if err != nil {
		return err
	}

	amount := book.DiscountedPrice() * float64(*qty)

	flow := checkout.NewFlow(a.client, stripe.NewClient(a.cfg.Stripe.PublishableKey))

	if err := flow.Submit(ctx, amount, cardFlags.card(), checkout.DirectBuy(book.ID, *qty)); err != nil {
		return err
	}

	fmt.Printf("Payment of Rs %.0f successful, order placed for %q\n", amount, book.Title)

	return nil
}

func (a *app) sell(ctx context.Context, args []string) error {

	if err := a.guard(); err != nil {
		return err
	}

	flags := flag.NewFlagSet("sell", flag.ExitOnError)
	title := flags.String("title", "", "listing title")
	description := flags.String("description", "", "listing description")
	author := flags.String("author", "", "author / seller name")
	language := flags.String("language", "", "book language")
	price := flags.Float64("price", 0, "list price")
	stock := flags.Int("stock", 1, "units for sale")
	genres := flags.String("genres", "", "comma-separated genres")
	file := flags.String("file", "", "path to the book file")
	cover := flags.String("cover", "", "path to the cover image")
	images := flags.String("images", "", "comma-separated gallery image paths")
	flags.Parse(args)

	uploader := cloudinary.NewUploader(a.cfg.Cloudinary.CloudName, a.cfg.Cloudinary.UploadPreset)

	fileURL, err := uploader.UploadFile(ctx, *file)
	if err != nil {
		return appErrors.UploadError("Failed to upload book file").WithError(err)
	}

	coverURL, err := uploader.UploadFile(ctx, *cover)
	if err != nil {
		return appErrors.UploadError("Failed to upload cover image").WithError(err)
	}

	var imageURLs []string

	for _, path := range splitList(*images) {

		url, err := uploader.UploadFile(ctx, path)
		if err != nil {
			return appErrors.UploadError("Failed to upload gallery image").WithError(err)
		}

		imageURLs = append(imageURLs, url)
	}

	err = a.client.AddBook(ctx, &models.AddBookRequest{
		URL:         fileURL,
		Title:       *title,
		Description: *description,
		Author:      *author,
		Language:    *language,
		Price:       *price,
		Stock:       *stock,
		CoverImage:  coverURL,
		Images:      imageURLs,
		Genre:       splitList(*genres),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Listing published: %s\n", *title)

	return nil
}

func (a *app) summary(ctx context.Context, args []string) error {

	if len(args) < 1 {
		return appErrors.BadRequestError("Usage: storefront summary <description>")
	}

	summary, err := a.client.GenerateSummary(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(a.sanitizer.Clean(summary))

	return nil
}

type cardFlags struct {
	number, expMonth, expYear, cvc *string
}

func cardFlagSet(flags *flag.FlagSet) *cardFlags {
	return &cardFlags{
		number:   flags.String("card-number", "", "card number"),
		expMonth: flags.String("card-exp-month", "", "card expiry month"),
		expYear:  flags.String("card-exp-year", "", "card expiry year"),
		cvc:      flags.String("card-cvc", "", "card CVC"),
	}
}

func (c *cardFlags) card() models.Card {
	return models.Card{
		Number:   *c.number,
		ExpMonth: *c.expMonth,
		ExpYear:  *c.expYear,
		CVC:      *c.cvc,
	}
}

func parseCard(args []string) (models.Card, error) {

	flags := flag.NewFlagSet("checkout", flag.ExitOnError)
	cf := cardFlagSet(flags)
	flags.Parse(args)

	card := cf.card()

	if card.Number == "" {
		return card, appErrors.ValidationError("Card details are required")
	}

	return card, nil
}

func splitList(value string) []string {

	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

func printBooks(books []models.Book) {

	if len(books) == 0 {
		fmt.Println("  (nothing here)")

		return
	}

	for i := range books {
		fmt.Printf("  %-26s Rs %-8.0f sale Rs %-8.0f %s\n",
			books[i].Title, books[i].Price, books[i].DiscountedPrice(), books[i].ID)
	}
}

func printBookDetail(book *models.Book) {
	fmt.Printf("%s by %s\n", book.Title, book.Author)
	fmt.Printf("Rs %.2f (sale Rs %.2f)\n", book.Price, book.DiscountedPrice())
	fmt.Printf("stock %d  genres %s\n", book.Stock, strings.Join(book.Genre, ", "))
	fmt.Println(book.Description)
}

func printCart(reconciler *cart.Reconciler) {

	lines := reconciler.Lines()

	if len(lines) == 0 {
		fmt.Println("Your cart is empty")

		return
	}

	for i := range lines {

		if lines[i].Manga == nil {
			fmt.Printf("  %-26s x%d (details unavailable)\n", lines[i].BookID(), lines[i].Quantity)

			continue
		}

		fmt.Printf("  %-26s x%d  Rs %.0f\n",
			lines[i].Manga.Title, lines[i].Quantity,
			lines[i].Manga.DiscountedPrice()*float64(lines[i].Quantity))
	}

	fmt.Printf("Estimate total: Rs %.0f\n", reconciler.Total())
}

func notify(err error) {

	if appErr, ok := appErrors.IsAppError(err); ok {
		fmt.Fprintf(os.Stderr, "error: %s\n", appErr.Message)

		if appErr.Err != nil {
			slog.Debug("Command failed", slog.String("code", appErr.Code), slog.String("cause", appErr.Err.Error()))
		}

		return
	}

	fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
}
