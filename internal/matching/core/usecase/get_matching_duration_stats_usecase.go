package usecase

import (
	"context"
	"errors"
	"time"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/matching/core/domain"
	"funnel-metrics-service/internal/matching/core/ports"
	"funnel-metrics-service/internal/observability"

	"github.com/samber/lo"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrWindowTooLarge   = errors.New("time window too large")
)

type GetDurationStatsInput struct {
	From     int64 // unix seconds
	To       int64 // unix seconds
	Interval domain.Interval
}

type Options struct {
	Qualifying domain.StatusSet
	Location   *time.Location
	MaxWindow  time.Duration
}

type GetMatchingDurationStatsUseCase struct {
	source ports.DurationSourcePort
	opts   Options
}

func NewGetMatchingDurationStatsUseCase(source ports.DurationSourcePort, opts Options) *GetMatchingDurationStatsUseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &GetMatchingDurationStatsUseCase{source: source, opts: opts}
}

// Stats computes the overall matching duration of samples.
func (uc *GetMatchingDurationStatsUseCase) Stats(samples []domain.DurationSample) (domain.DurationStats, error) {
	return AvgDuration(samples, uc.opts.Qualifying)
}

// Execute fetches the samples started in the window and reports the
// overall average plus one entry per period, including empty periods.
func (uc *GetMatchingDurationStatsUseCase) Execute(ctx context.Context, in GetDurationStatsInput) (*domain.DurationReport, error) {
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}
	if in.Interval == "" {
		in.Interval = domain.IntervalDay
	}
	if err := in.Interval.Validate(); err != nil {
		return nil, err
	}
	from := time.Unix(in.From, 0).In(uc.opts.Location)
	to := time.Unix(in.To, 0).In(uc.opts.Location)
	if uc.opts.MaxWindow > 0 && to.Sub(from) > uc.opts.MaxWindow {
		return nil, ErrWindowTooLarge
	}

	samples, err := uc.source.FetchSamples(ctx, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	report, err := uc.report(samples, in.Interval, from, to)
	if err != nil {
		if errors.Is(err, calc.ErrDataIntegrity) {
			observability.IntegrityErrorsTotal.WithLabelValues("matching").Inc()
			logging.Error().Err(err).Msg("matching duration aborted on invalid sample")
		}
		return nil, err
	}

	report.SkippedCandidates = lo.SumBy(samples, func(s domain.DurationSample) int { return s.SkippedCandidates })
	if report.SkippedCandidates > 0 {
		observability.SkippedRecordsTotal.WithLabelValues("matching").Add(float64(report.SkippedCandidates))
		logging.Warn().Int("skipped", report.SkippedCandidates).Msg("matching duration left out incomplete applications")
	}
	return report, nil
}

func (uc *GetMatchingDurationStatsUseCase) report(samples []domain.DurationSample, iv domain.Interval, from, to time.Time) (*domain.DurationReport, error) {
	overall, err := uc.Stats(samples)
	if err != nil {
		return nil, err
	}

	byPeriod := lo.GroupBy(samples, func(s domain.DurationSample) string {
		return iv.Label(iv.Truncate(s.Start.In(uc.opts.Location)))
	})

	report := &domain.DurationReport{Interval: iv, Overall: overall}
	for start := iv.Truncate(from); !start.After(to); start = iv.Next(start) {
		label := iv.Label(start)
		stats, err := uc.Stats(byPeriod[label])
		if err != nil {
			return nil, err
		}
		report.Periods = append(report.Periods, domain.PeriodStats{
			Label:         label,
			Start:         start,
			DurationStats: stats,
		})
	}
	return report, nil
}
