package domain

import "funnel-metrics-service/internal/calc"

// DirectSubEntity is the reserved sub-entity key for facts without one,
// e.g. landing page visits that carried no campaign code.
const DirectSubEntity = "direct"

type Tier string

const (
	TierTotal     Tier = "total"
	TierEntity    Tier = "entity"
	TierSubEntity Tier = "sub_entity"
)

// Counts holds the additive metrics of one rollup row.
type Counts struct {
	PageViews          int64
	Sessions           int64
	Events             int64
	Registrations      int64
	ParentJobPageViews int64
	ParentJobSessions  int64
	Applications       int64
	ApplicationUsers   int64
}

// Add increments the counter for m by n.
func (c *Counts) Add(m Metric, n int64) {
	switch m {
	case MetricPageView:
		c.PageViews += n
	case MetricSession:
		c.Sessions += n
	case MetricEvent:
		c.Events += n
	case MetricRegistration:
		c.Registrations += n
	case MetricParentJobPV:
		c.ParentJobPageViews += n
	case MetricParentJobSession:
		c.ParentJobSessions += n
	case MetricApplication:
		c.Applications += n
	case MetricApplicationUser:
		c.ApplicationUsers += n
	}
}

// Get returns the counter for m.
func (c Counts) Get(m Metric) int64 {
	switch m {
	case MetricPageView:
		return c.PageViews
	case MetricSession:
		return c.Sessions
	case MetricEvent:
		return c.Events
	case MetricRegistration:
		return c.Registrations
	case MetricParentJobPV:
		return c.ParentJobPageViews
	case MetricParentJobSession:
		return c.ParentJobSessions
	case MetricApplication:
		return c.Applications
	case MetricApplicationUser:
		return c.ApplicationUsers
	}
	return 0
}

// Plus returns the field-wise sum of c and o.
func (c Counts) Plus(o Counts) Counts {
	for _, m := range AllMetrics {
		c.Add(m, o.Get(m))
	}
	return c
}

// Rates are fractions derived from the Counts of the same row. They are
// never summed or averaged across rows.
type Rates struct {
	CTR              float64
	RegistrationRate float64
	ApplicationRate  float64
}

// RatesFor derives the rates of a row from its own counts.
func RatesFor(c Counts) Rates {
	return Rates{
		CTR:              calc.Rate(c.Events, c.Sessions),
		RegistrationRate: calc.Rate(c.Registrations, c.Sessions),
		ApplicationRate:  calc.Rate(c.ApplicationUsers, c.Registrations),
	}
}

// Row is one node of the three-tier rollup.
type Row struct {
	Tier        Tier
	EntityID    string
	SubEntityID string
	Label       string
	Configured  bool
	Metrics     Counts
	Rates       Rates
}

// Report is a complete rollup: one total row, then each entity row
// followed by its sub-entity rows.
type Report struct {
	Rows []Row
	// DroppedFacts counts facts whose entity was not in the catalog.
	DroppedFacts int
	// UnknownEntities lists the distinct entity ids behind DroppedFacts.
	UnknownEntities []string
	Filter          *FilterPredicate
}

// Total returns the total row.
func (r Report) Total() Row {
	for _, row := range r.Rows {
		if row.Tier == TierTotal {
			return row
		}
	}
	return Row{Tier: TierTotal}
}

// Entities returns the entity rows in report order.
func (r Report) Entities() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Tier == TierEntity {
			out = append(out, row)
		}
	}
	return out
}

// Children returns the sub-entity rows below entityID.
func (r Report) Children(entityID string) []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Tier == TierSubEntity && row.EntityID == entityID {
			out = append(out, row)
		}
	}
	return out
}

// Entity returns the entity row for id.
func (r Report) Entity(id string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Tier == TierEntity && row.EntityID == id {
			return row, true
		}
	}
	return Row{}, false
}
