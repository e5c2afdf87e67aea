package usecase

import (
	"fmt"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/engagement/core/domain"

	"github.com/samber/lo"
)

// Summarize splits sessions by CTA interaction and describes each
// population. A session with negative dwell or a scroll depth outside
// 0..100 fails the whole summary.
func Summarize(sessions []domain.Session) (domain.Summary, error) {
	for i, s := range sessions {
		if err := validateSession(i, s); err != nil {
			return domain.Summary{}, err
		}
	}

	clicked, notClicked := lo.FilterReject(sessions, func(s domain.Session, _ int) bool {
		return s.CTAClicked
	})

	return domain.Summary{
		All:           describe(domain.PopulationAll, sessions),
		CTAClicked:    describe(domain.PopulationCTAClicked, clicked),
		CTANotClicked: describe(domain.PopulationCTANotClicked, notClicked),
	}, nil
}

func describe(p domain.Population, sessions []domain.Session) domain.PopulationSummary {
	size := len(sessions)
	out := domain.PopulationSummary{
		Population:  p,
		Size:        size,
		ScrollReach: reach(sessions, domain.ScrollThresholds, func(s domain.Session) float64 { return s.ScrollDepth }),
		DwellReach:  reach(sessions, domain.DwellThresholds, func(s domain.Session) float64 { return s.DwellSeconds }),
	}

	var levelSum int
	for _, s := range sessions {
		lvl := s.Level()
		levelSum += lvl
		if lvl == 0 {
			out.Unengaged++
			continue
		}
		out.Levels[lvl-1]++
	}

	out.AvgDwellSeconds = calc.Rate(lo.SumBy(sessions, func(s domain.Session) float64 { return s.DwellSeconds }), float64(size))
	out.AvgScrollDepth = calc.Rate(lo.SumBy(sessions, func(s domain.Session) float64 { return s.ScrollDepth }), float64(size))
	out.AvgLevel = calc.Rate(levelSum, size)
	return out
}

func reach(sessions []domain.Session, thresholds []float64, value func(domain.Session) float64) []domain.ThresholdRate {
	out := make([]domain.ThresholdRate, 0, len(thresholds))
	for _, th := range thresholds {
		n := lo.CountBy(sessions, func(s domain.Session) bool { return value(s) >= th })
		out = append(out, domain.ThresholdRate{Threshold: th, Reached: n, Rate: calc.Rate(n, len(sessions))})
	}
	return out
}

func validateSession(i int, s domain.Session) error {
	record := fmt.Sprintf("session[%d] id=%q", i, s.ID)
	switch {
	case s.DwellSeconds < 0:
		return calc.NewDataIntegrityError(record, "negative dwell %.1fs", s.DwellSeconds)
	case s.ScrollDepth < 0 || s.ScrollDepth > 100:
		return calc.NewDataIntegrityError(record, "scroll depth %.1f%% outside 0..100", s.ScrollDepth)
	}
	return nil
}
