package middleware

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/smartcram/smartcram-api/auth"
	"github.com/smartcram/smartcram-api/models"
)

type contextKey string

const userKey contextKey = "user"

// Auth authenticates requests with a Bearer token and attaches the matching
// active user to the request context.
type Auth struct {
	DB     *gorm.DB
	Secret string
}

// RequireUser rejects requests without a valid token or with an inactive or
// deleted user.
func (a *Auth) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := auth.VerifyToken(token, a.Secret)
		if err != nil {
			http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := a.DB.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			http.Error(w, "User not found or inactive", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserFrom returns the authenticated user attached by RequireUser.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a request carrying the user as if RequireUser had run.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
