package fiber

import (
	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/matching/core/domain"
)

type DurationStatsResponse struct {
	AvgHours  float64 `json:"avg_hours" example:"18.5"`
	Matched   int     `json:"matched"`
	Unmatched int     `json:"unmatched"`
}

type PeriodStatsResponse struct {
	Period string `json:"period" example:"2026-02-10"`
	DurationStatsResponse
}

type DurationReportResponse struct {
	Interval          string                `json:"interval" example:"day"`
	Overall           DurationStatsResponse `json:"overall"`
	Periods           []PeriodStatsResponse `json:"periods"`
	SkippedCandidates int                   `json:"skipped_candidates" example:"0"`
}

func toStats(s domain.DurationStats) DurationStatsResponse {
	return DurationStatsResponse{
		AvgHours:  calc.Round(s.AvgHours, 1),
		Matched:   s.Matched,
		Unmatched: s.Unmatched,
	}
}

func toDurationReportResponse(r *domain.DurationReport) DurationReportResponse {
	resp := DurationReportResponse{
		Interval:          string(r.Interval),
		Overall:           toStats(r.Overall),
		Periods:           make([]PeriodStatsResponse, 0, len(r.Periods)),
		SkippedCandidates: r.SkippedCandidates,
	}
	for _, p := range r.Periods {
		resp.Periods = append(resp.Periods, PeriodStatsResponse{Period: p.Label, DurationStatsResponse: toStats(p.DurationStats)})
	}
	return resp
}
