package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mangazone/storefront/internal/api"
	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/models"
	"github.com/mangazone/storefront/internal/session"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, sess *session.Session, handler http.HandlerFunc) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.New(server.URL, sess)
}

func TestAuthHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticated Session Sends Bearer And Id", func(t *testing.T) {
		// Arrange
		var gotAuth, gotID, gotRequestID string
		sess := &session.Session{Token: "opaque-token", UserID: "u1"}
		client := newTestClient(t, sess, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotID = r.Header.Get("id")
			gotRequestID = r.Header.Get("X-Request-ID")
			w.Write([]byte(`{"_id":"u1","username":"kev"}`))
		})

		// Act
		user, err := client.UserInfo(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "kev", user.Username)
		assert.Equal(t, "Bearer opaque-token", gotAuth)
		assert.Equal(t, "u1", gotID)
		assert.NotEmpty(t, gotRequestID)
	})

	t.Run("Anonymous Session Omits Identity Headers", func(t *testing.T) {
		// Arrange
		var gotAuth string
		client := newTestClient(t, &session.Session{}, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		})

		// Act
		reviews := client.ListReviews(ctx)

		// Assert
		assert.Empty(t, reviews)
		assert.Empty(t, gotAuth)
	})
}

func TestUserInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous - Defined Zero User, No Network Call", func(t *testing.T) {
		// Arrange
		calls := 0
		client := newTestClient(t, &session.Session{}, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})

		// Act
		user, err := client.UserInfo(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Empty(t, user.ID)
		assert.Equal(t, 0, calls)
	})
}

func TestErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("Unauthorized Status Maps To Unauthorized Code", func(t *testing.T) {
		// Arrange
		sess := &session.Session{Token: "stale", UserID: "u1"}
		client := newTestClient(t, sess, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
		})

		// Act
		_, err := client.UserInfo(ctx)

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "token expired", appErr.Message)
	})

	t.Run("Legacy Error Envelope Is Accepted", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, &session.Session{Token: "t", UserID: "u"}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"quantity must be positive"}`))
		})

		// Act
		err := client.AddCartItem(ctx, "m1", 1)

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "quantity must be positive", appErr.Message)
	})

	t.Run("Unreachable Server Is A Transport Error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()
		client := api.New(server.URL, &session.Session{Token: "t", UserID: "u"})

		// Act
		err := client.AddCartItem(ctx, "m1", 1)

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTransport, appErr.Code)
	})
}

func TestValidationBeforeNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid Review Never Reaches The Server", func(t *testing.T) {
		// Arrange
		calls := 0
		client := newTestClient(t, &session.Session{Token: "t", UserID: "u"}, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})

		// Act
		err := client.SubmitReview(ctx, &models.SubmitReviewRequest{MangaID: "m1", Rating: 9, Comment: "x"})

		// Assert
		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, 0, calls)
	})
}
