package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "rentwheels/pkg/errors"
	httputil "rentwheels/pkg/http"
	"rentwheels/pkg/sanitizer"
)

// RequireOwner guards routes parameterized by an owner email. The
// authenticated identity must equal the path parameter: no identity yields
// 401, a mismatch yields 403. The guard has no side effects.
func RequireOwner(param string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			_ = httputil.WriteError(w, apperrors.Unauthorized("authentication required"))
			return
		}

		requested := sanitizer.SanitizeEmail(ps.ByName(param))
		if requested == "" || identity != requested {
			_ = httputil.WriteError(w, apperrors.Forbidden("you can only access your own resources"))
			return
		}

		next(w, r, ps)
	}
}
