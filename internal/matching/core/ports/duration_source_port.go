package ports

import (
	"context"
	"time"

	"funnel-metrics-service/internal/matching/core/domain"
)

// DurationSourcePort returns the samples whose start falls in [from, to].
type DurationSourcePort interface {
	FetchSamples(ctx context.Context, from, to time.Time) ([]domain.DurationSample, error)
}
