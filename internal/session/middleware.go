package session

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/httpx"
)

type TokenParser interface {
	Parse(raw string) (Session, error)
}

// Authenticate resolves the bearer token into a Session carried by the
// request context. The session is rebuilt from the stored user, so a removed
// user or a changed role takes effect on the next request. Requests without
// a valid token, or whose user no longer exists, get 401.
func Authenticate(parser TokenParser, users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				traceID, log := httpx.Trace(logger)
				httpx.WriteError(w, log, traceID, apperrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			sess, err := parser.Parse(raw)
			if err != nil {
				traceID, log := httpx.Trace(logger)
				log.Warn("rejected session token", zap.Error(err))
				httpx.WriteError(w, log, traceID, err)
				return
			}

			current, ok := users.FindByID(r.Context(), sess.User.ID)
			if !ok {
				traceID, log := httpx.Trace(logger)
				log.Warn("session user no longer exists", zap.String("userId", sess.User.ID))
				httpx.WriteError(w, log, traceID, apperrors.NewUnauthorizedError("user no longer exists"))
				return
			}
			sess = New(current)

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), sess)))
		})
	}
}

// MustFromRequest returns the request's Session, writing 401 when the
// Authenticate middleware did not run.
func MustFromRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string) (Session, bool) {
	sess, ok := FromContext(r.Context())
	if !ok {
		httpx.WriteError(w, logger, traceID, apperrors.NewUnauthorizedError("no session"))
		return Session{}, false
	}
	return sess, true
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
