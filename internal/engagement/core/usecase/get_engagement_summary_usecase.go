package usecase

import (
	"context"
	"errors"
	"time"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/engagement/core/domain"
	"funnel-metrics-service/internal/engagement/core/ports"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/observability"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrWindowTooLarge   = errors.New("time window too large")
)

type GetEngagementInput struct {
	From     int64
	To       int64
	EntityID *string
}

type GetEngagementSummaryUseCase struct {
	source    ports.SessionSourcePort
	maxWindow time.Duration
}

func NewGetEngagementSummaryUseCase(source ports.SessionSourcePort, maxWindow time.Duration) *GetEngagementSummaryUseCase {
	return &GetEngagementSummaryUseCase{source: source, maxWindow: maxWindow}
}

// Summarize describes an already fetched set of sessions.
func (uc *GetEngagementSummaryUseCase) Summarize(sessions []domain.Session) (domain.Summary, error) {
	return Summarize(sessions)
}

func (uc *GetEngagementSummaryUseCase) Execute(ctx context.Context, in GetEngagementInput) (*domain.Summary, error) {
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}
	q := ports.SessionQuery{
		From:     time.Unix(in.From, 0).UTC(),
		To:       time.Unix(in.To, 0).UTC(),
		EntityID: in.EntityID,
	}
	if uc.maxWindow > 0 && q.To.Sub(q.From) > uc.maxWindow {
		return nil, ErrWindowTooLarge
	}

	batch, err := uc.source.FetchSessions(ctx, q)
	if err != nil {
		return nil, err
	}
	if batch.Skipped > 0 {
		observability.SkippedRecordsTotal.WithLabelValues("engagement").Add(float64(batch.Skipped))
		logging.Warn().Int("skipped", batch.Skipped).Msg("engagement summary left out incomplete sessions")
	}

	summary, err := uc.Summarize(batch.Sessions)
	if err != nil {
		if errors.Is(err, calc.ErrDataIntegrity) {
			observability.IntegrityErrorsTotal.WithLabelValues("engagement").Inc()
			logging.Error().Err(err).Msg("engagement summary aborted on invalid session")
		}
		return nil, err
	}
	summary.SkippedSessions = batch.Skipped
	return &summary, nil
}
