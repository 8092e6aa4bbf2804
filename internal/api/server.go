package api

import (
	"context"

	"github.com/vytor/wordflow/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB                Pinger
	CatalogService    services.CatalogService
	ReviewService     services.ReviewService
	SessionService    services.SessionService
	AssessmentService services.AssessmentService
}
