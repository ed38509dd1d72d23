package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/service"

	"go.uber.org/zap"
)

const (
	apiPrefix          = "/api/v1"
	sessionTokenHeader = "X-Session-Token"
)

type sessionKey struct{}

func withSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the session attached by the auth middleware, or nil.
func sessionFrom(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return s
}

// sessionToken reads X-Session-Token, falling back to a bearer token.
func sessionToken(r *http.Request) string {
	if tok := strings.TrimSpace(r.Header.Get(sessionTokenHeader)); tok != "" {
		return tok
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// requireRole guards the /landlord and /tenant halves of the API with
// service.CanAccess. Other paths pass through untouched.
func requireRole(auth service.AuthService, logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel, ok := strings.CutPrefix(r.URL.Path, apiPrefix)
		// With no user type CanAccess only admits the open paths.
		if !ok || service.CanAccess("", rel) {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := auth.Session(r.Context(), sessionToken(r))
		if err != nil {
			logger.Error("Session lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("internal server error"))
			return
		}
		if sess == nil {
			writeJSON(w, http.StatusUnauthorized, Expired("session expired, please log in again"))
			return
		}
		if !service.CanAccess(sess.UserType, rel) {
			writeJSON(w, http.StatusForbidden, Fail("access denied"))
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// simulateLatency delays every API call by d. A request cancelled while
// waiting never reaches the handler.
func simulateLatency(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, apiPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		select {
		case <-time.After(d):
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			writeJSON(w, http.StatusServiceUnavailable, Fail("request cancelled"))
		}
	})
}

// recoverPanics turns a handler panic into a logged 500.
func recoverPanics(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Handler panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				writeJSON(w, http.StatusInternalServerError, Fail("internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
