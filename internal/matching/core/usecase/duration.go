package usecase

import (
	"fmt"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/matching/core/domain"

	"github.com/samber/lo"
)

// MatchDuration returns the hours from the sample start to its first
// qualifying candidate. Candidates that do not qualify are ignored, not
// treated as late matches. ok is false when no candidate qualifies.
//
// The candidate time is when the status last changed, which stands in for
// the moment of matching. Unrelated later status updates move it.
func MatchDuration(s domain.DurationSample, qualifying domain.StatusSet) (hours float64, ok bool, err error) {
	matches := lo.Filter(s.Candidates, func(c domain.Candidate, _ int) bool {
		return qualifying.Contains(c.Status)
	})
	if len(matches) == 0 {
		return 0, false, nil
	}

	first := lo.MinBy(matches, func(a, b domain.Candidate) bool { return a.At.Before(b.At) })
	hours, err = calc.DurationHours(fmt.Sprintf("sample %s", s.ID), s.Start, first.At)
	if err != nil {
		return 0, false, err
	}
	return hours, true, nil
}

// AvgDuration averages the defined durations of samples. Samples without a
// qualifying candidate count as Unmatched and do not pull the mean down.
func AvgDuration(samples []domain.DurationSample, qualifying domain.StatusSet) (domain.DurationStats, error) {
	var (
		stats domain.DurationStats
		sum   float64
	)
	for _, s := range samples {
		h, ok, err := MatchDuration(s, qualifying)
		if err != nil {
			return domain.DurationStats{}, err
		}
		if !ok {
			stats.Unmatched++
			continue
		}
		stats.Matched++
		sum += h
	}
	stats.AvgHours = calc.Rate(sum, float64(stats.Matched))
	return stats, nil
}
