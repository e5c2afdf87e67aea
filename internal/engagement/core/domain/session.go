package domain

import "time"

// Session is the engagement summary of one landing page visit.
type Session struct {
	ID           string
	EntityID     string
	DwellSeconds float64
	ScrollDepth  float64 // percent, 0..100
	CTAClicked   bool
	At           time.Time
}

var (
	ScrollThresholds = []float64{25, 50, 75, 90}
	DwellThresholds  = []float64{5, 10}
)

// Level returns the highest engagement level the session satisfies, or 0
// when it stayed under five seconds.
//
//	1: dwell >= 5s
//	2: dwell >= 10s
//	3: level 2 and scroll >= 50%
//	4: level 2 and scroll >= 75%
//	5: level 2 and scroll >= 90%
func (s Session) Level() int {
	switch {
	case s.DwellSeconds >= 10 && s.ScrollDepth >= 90:
		return 5
	case s.DwellSeconds >= 10 && s.ScrollDepth >= 75:
		return 4
	case s.DwellSeconds >= 10 && s.ScrollDepth >= 50:
		return 3
	case s.DwellSeconds >= 10:
		return 2
	case s.DwellSeconds >= 5:
		return 1
	}
	return 0
}

type ThresholdRate struct {
	Threshold float64
	Reached   int
	Rate      float64
}

type Population string

const (
	PopulationAll           Population = "all"
	PopulationCTAClicked    Population = "cta_clicked"
	PopulationCTANotClicked Population = "cta_not_clicked"
)

// PopulationSummary describes one session population. Unengaged plus the
// five Levels always equals Size. The Levels alone sum to Size only when
// every session dwelled at least 5 seconds or scrolled at least 50%;
// the rest land in Unengaged.
type PopulationSummary struct {
	Population  Population
	Size        int
	ScrollReach []ThresholdRate
	DwellReach  []ThresholdRate
	Levels      [5]int // Levels[0] is level 1
	Unengaged   int

	AvgDwellSeconds float64
	AvgScrollDepth  float64
	AvgLevel        float64
}

// Summary splits the sessions of a window by CTA outcome. SkippedSessions
// counts stored summaries that were left out because they were incomplete.
type Summary struct {
	All           PopulationSummary
	CTAClicked    PopulationSummary
	CTANotClicked PopulationSummary

	SkippedSessions int
}
