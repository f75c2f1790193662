package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

var (
	errMissingToken      = errors.New("missing bearer token")
	errInvalidToken      = errors.New("invalid token")
	errAuthNotConfigured = errors.New("authentication not configured")
)

// Authenticator extracts the user id from HS256 bearer tokens.
// Session issuing lives elsewhere; only the subject claim is read here.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator for secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// UserID validates a raw token and returns its subject.
func (a *Authenticator) UserID(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", fmt.Errorf("%w: no subject", errInvalidToken)
	}
	return sub, nil
}

type userIDKey struct{}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// requireUser rejects requests without a valid bearer token.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.auth == nil {
			writeEnvelope(w, r, http.StatusInternalServerError, domain.Fail(errAuthNotConfigured.Error()))
			return
		}

		raw, ok := bearerToken(r)
		if !ok {
			writeEnvelope(w, r, http.StatusUnauthorized, domain.Fail(errMissingToken.Error()))
			return
		}

		userID, err := h.auth.UserID(raw)
		if err != nil {
			writeEnvelope(w, r, http.StatusUnauthorized, domain.Fail(errInvalidToken.Error()))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[7:])
	return token, token != ""
}
