package fiber

import (
	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/rollup/core/domain"
)

type MetricsResponse struct {
	PageViews          int64 `json:"pv"`
	Sessions           int64 `json:"sessions"`
	Events             int64 `json:"events"`
	Registrations      int64 `json:"registrations"`
	ParentJobPageViews int64 `json:"parent_job_pv"`
	ParentJobSessions  int64 `json:"parent_job_sessions"`
	Applications       int64 `json:"applications"`
	ApplicationUsers   int64 `json:"application_users"`
}

// RatesResponse carries rates as percentages rounded to two places.
type RatesResponse struct {
	CTR              float64 `json:"ctr_pct" example:"12.5"`
	RegistrationRate float64 `json:"registration_rate_pct" example:"3.25"`
	ApplicationRate  float64 `json:"application_rate_pct" example:"40"`
}

type RollupRowResponse struct {
	Tier        string          `json:"tier" example:"sub_entity"`
	EntityID    string          `json:"entity_id,omitempty" example:"12"`
	SubEntityID string          `json:"sub_entity_id,omitempty" example:"nurse-spring"`
	Label       string          `json:"label"`
	Configured  bool            `json:"configured"`
	Metrics     MetricsResponse `json:"metrics"`
	Rates       RatesResponse   `json:"rates"`
}

type FilterResponse struct {
	Field  string   `json:"field" example:"category"`
	Match  string   `json:"match" example:"genre"`
	Values []string `json:"values"`
}

type RollupResponse struct {
	From            int64               `json:"from"`
	To              int64               `json:"to"`
	Filter          *FilterResponse     `json:"filter,omitempty"`
	DroppedFacts    int                 `json:"dropped_facts"`
	UnknownEntities []string            `json:"unknown_entities"`
	Rows            []RollupRowResponse `json:"rows"`
}

func toRollupResponse(from, to int64, r *domain.Report) RollupResponse {
	resp := RollupResponse{
		From:            from,
		To:              to,
		DroppedFacts:    r.DroppedFacts,
		UnknownEntities: r.UnknownEntities,
		Rows:            make([]RollupRowResponse, 0, len(r.Rows)),
	}
	if resp.UnknownEntities == nil {
		resp.UnknownEntities = []string{}
	}
	if r.Filter != nil {
		resp.Filter = &FilterResponse{
			Field:  string(r.Filter.Field),
			Match:  string(r.Filter.Match),
			Values: r.Filter.Values,
		}
	}

	for _, row := range r.Rows {
		m := row.Metrics
		resp.Rows = append(resp.Rows, RollupRowResponse{
			Tier:        string(row.Tier),
			EntityID:    row.EntityID,
			SubEntityID: row.SubEntityID,
			Label:       row.Label,
			Configured:  row.Configured,
			Metrics: MetricsResponse{
				PageViews:          m.PageViews,
				Sessions:           m.Sessions,
				Events:             m.Events,
				Registrations:      m.Registrations,
				ParentJobPageViews: m.ParentJobPageViews,
				ParentJobSessions:  m.ParentJobSessions,
				Applications:       m.Applications,
				ApplicationUsers:   m.ApplicationUsers,
			},
			Rates: RatesResponse{
				CTR:              calc.Percent(row.Rates.CTR, 2),
				RegistrationRate: calc.Percent(row.Rates.RegistrationRate, 2),
				ApplicationRate:  calc.Percent(row.Rates.ApplicationRate, 2),
			},
		})
	}
	return resp
}
