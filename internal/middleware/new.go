package middleware

import (
	"repo-pulse/pkg/log"
)

type Middleware struct {
	l          log.Logger
	adminToken string
}

// New creates the shared middleware set. An empty adminToken leaves the
// admin routes open.
func New(l log.Logger, adminToken string) Middleware {
	return Middleware{
		l:          l,
		adminToken: adminToken,
	}
}
