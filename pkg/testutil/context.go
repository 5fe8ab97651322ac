package testutil

import (
	"net/http"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// WithUser injects an authenticated user into the request context, simulating
// what the auth middleware does for real requests.
func WithUser(req *http.Request, userID string, roles ...string) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	if len(roles) > 0 {
		ctx = requestcontext.WithUserRoles(ctx, roles)
	}
	return req.WithContext(ctx)
}
