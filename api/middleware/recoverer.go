package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/freshmart-id/freshmart-backend/api/responses"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

// Recoverer converts handler panics into a 500 envelope instead of a dropped
// connection. http.ErrAbortHandler passes through so aborted streams keep
// their net/http semantics.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic": rec,
						"stack": string(debug.Stack()),
					})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
