package fiber

import (
	"time"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/ranking/core/domain"
)

type WorkerResponse struct {
	ID             int64    `json:"id" example:"42"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Prefecture     *string  `json:"prefecture,omitempty"`
	City           *string  `json:"city,omitempty"`
	IsSuspended    bool     `json:"is_suspended"`
	CreatedAt      string   `json:"created_at" example:"2025-04-01T09:00:00Z"`
	AvgRating      float64  `json:"avg_rating" example:"4.5"`
	ReviewCount    int64    `json:"review_count"`
	TotalWorkCount int64    `json:"total_work_count"`
	DistanceKm     *float64 `json:"distance_km,omitempty" example:"3.2"`
}

type WorkerPageResponse struct {
	Workers            []WorkerResponse `json:"workers"`
	Total              int64            `json:"total"`
	TotalPages         int              `json:"total_pages"`
	Page               int              `json:"page"`
	PageSize           int              `json:"page_size"`
	Mode               string           `json:"mode" example:"stored"`
	MissingCoordinates int              `json:"missing_coordinates"`
}

func toWorkerPageResponse(p *domain.PageResult) WorkerPageResponse {
	resp := WorkerPageResponse{
		Workers:            make([]WorkerResponse, 0, len(p.Rows)),
		Total:              p.Total,
		TotalPages:         p.TotalPages,
		Page:               p.Page,
		PageSize:           p.PageSize,
		Mode:               string(p.Mode),
		MissingCoordinates: p.MissingCoordinates,
	}
	for _, r := range p.Rows {
		w := WorkerResponse{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			Prefecture:     r.Prefecture,
			City:           r.City,
			IsSuspended:    r.IsSuspended,
			CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
			AvgRating:      calc.Round(r.AvgRating, 1),
			ReviewCount:    r.ReviewCount,
			TotalWorkCount: r.TotalWorkCount,
		}
		if r.DistanceKm != nil {
			d := calc.Round(*r.DistanceKm, 1)
			w.DistanceKm = &d
		}
		resp.Workers = append(resp.Workers, w)
	}
	return resp
}
