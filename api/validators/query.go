package validators

import (
	"net/http"
	"strconv"

	"github.com/freshmart-id/freshmart-backend/pkg/pagination"
)

// PaginationFromQuery reads ?limit= and ?cursor= with safe fallbacks. Bad
// limit values fall back to the default rather than failing the request; a
// bad cursor fails later, during parsing, where it can be reported.
func PaginationFromQuery(r *http.Request) pagination.Params {
	params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}
	return params
}
