package domain

import "time"

// Metric names the funnel counter a leaf fact contributes to.
type Metric string

const (
	MetricPageView         Metric = "pv"
	MetricSession          Metric = "session"
	MetricEvent            Metric = "event"
	MetricRegistration     Metric = "registration"
	MetricParentJobPV      Metric = "parent_job_pv"
	MetricParentJobSession Metric = "parent_job_session"
	MetricApplication      Metric = "application"
	MetricApplicationUser  Metric = "application_user"
)

// AllMetrics lists every additive counter in display order.
var AllMetrics = []Metric{
	MetricPageView,
	MetricSession,
	MetricEvent,
	MetricRegistration,
	MetricParentJobPV,
	MetricParentJobSession,
	MetricApplication,
	MetricApplicationUser,
}

func (m Metric) Valid() bool {
	for _, known := range AllMetrics {
		if m == known {
			return true
		}
	}
	return false
}

// LeafFact is one countable event or transaction as supplied by the record
// source. The engine never mutates it.
type LeafFact struct {
	EntityID    string
	SubEntityID *string // nil -> DirectSubEntity
	Metric      Metric
	Start       time.Time
	End         *time.Time
	Category    *string
	Count       int64
	Value       *float64
}

// SubEntityKey returns the grouping key of the fact below its entity.
func (f LeafFact) SubEntityKey() string {
	if f.SubEntityID == nil || *f.SubEntityID == "" {
		return DirectSubEntity
	}
	return *f.SubEntityID
}

// Window is a closed time range [From, To].
type Window struct {
	From time.Time
	To   time.Time
}
