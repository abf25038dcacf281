package auth

import (
	"net/http"

	apperrors "futsal/pkg/errors"
	httputil "futsal/pkg/http"
	"futsal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Guard rejects requests without a valid bearer token with 401 and hands the
// verified claims to next through the request context.
func Guard(verifier Verifier, log *logger.Logger, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := verifier.Verify(BearerToken(r.Header.Get("Authorization")))
		if err != nil {
			log.Debug("Rejected unauthenticated request",
				"method", r.Method,
				"path", r.URL.Path,
				"reason", err,
			)
			if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Unauthorized")); writeErr != nil {
				log.Error("failed to write error response", "handler", "Guard", "operation", "WriteError", "error", writeErr)
			}
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)), ps)
	}
}
