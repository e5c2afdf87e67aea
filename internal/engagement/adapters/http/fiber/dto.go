package fiber

import (
	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/engagement/core/domain"
)

type ThresholdRateResponse struct {
	Threshold float64 `json:"threshold" example:"50"`
	Reached   int     `json:"reached" example:"42"`
	RatePct   float64 `json:"rate_pct" example:"61.76"`
}

type LevelsResponse struct {
	Unengaged int `json:"unengaged"`
	Level1    int `json:"level1"`
	Level2    int `json:"level2"`
	Level3    int `json:"level3"`
	Level4    int `json:"level4"`
	Level5    int `json:"level5"`
	Total     int `json:"total"`
}

type PopulationResponse struct {
	Sessions        int                     `json:"sessions"`
	ScrollReach     []ThresholdRateResponse `json:"scroll_reach"`
	DwellReach      []ThresholdRateResponse `json:"dwell_reach"`
	Levels          LevelsResponse          `json:"levels"`
	AvgDwellSeconds float64                 `json:"avg_dwell_seconds" example:"24"`
	AvgScrollDepth  float64                 `json:"avg_scroll_depth" example:"63"`
	AvgLevel        float64                 `json:"avg_level" example:"2.7"`
}

type EngagementResponse struct {
	From          int64              `json:"from"`
	To            int64              `json:"to"`
	All           PopulationResponse `json:"all"`
	CTAClicked    PopulationResponse `json:"cta_clicked"`
	CTANotClicked PopulationResponse `json:"cta_not_clicked"`

	SkippedSessions int `json:"skipped_sessions" example:"0"`
}

func toThresholds(in []domain.ThresholdRate) []ThresholdRateResponse {
	out := make([]ThresholdRateResponse, 0, len(in))
	for _, r := range in {
		out = append(out, ThresholdRateResponse{Threshold: r.Threshold, Reached: r.Reached, RatePct: calc.Percent(r.Rate, 2)})
	}
	return out
}

// Dwell and scroll averages are whole numbers on the wire; the level keeps
// one decimal.
func toPopulation(p domain.PopulationSummary) PopulationResponse {
	return PopulationResponse{
		Sessions:    p.Size,
		ScrollReach: toThresholds(p.ScrollReach),
		DwellReach:  toThresholds(p.DwellReach),
		Levels: LevelsResponse{
			Unengaged: p.Unengaged,
			Level1:    p.Levels[0],
			Level2:    p.Levels[1],
			Level3:    p.Levels[2],
			Level4:    p.Levels[3],
			Level5:    p.Levels[4],
			Total:     p.Size,
		},
		AvgDwellSeconds: calc.Round(p.AvgDwellSeconds, 0),
		AvgScrollDepth:  calc.Round(p.AvgScrollDepth, 0),
		AvgLevel:        calc.Round(p.AvgLevel, 1),
	}
}

func toEngagementResponse(from, to int64, s *domain.Summary) EngagementResponse {
	return EngagementResponse{
		From:          from,
		To:            to,
		All:           toPopulation(s.All),
		CTAClicked:    toPopulation(s.CTAClicked),
		CTANotClicked: toPopulation(s.CTANotClicked),

		SkippedSessions: s.SkippedSessions,
	}
}
