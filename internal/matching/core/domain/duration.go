package domain

import (
	"errors"
	"time"
)

// Candidate is one possible end event of a sample, e.g. an application
// whose status last changed at At.
type Candidate struct {
	At     time.Time
	Status string
}

// DurationSample pairs a start time with the candidate end events of the
// same record. For jobs, Start is the posting time and the candidates are
// its applications. SkippedCandidates counts applications that could not
// become a Candidate because their status or change time was missing.
type DurationSample struct {
	ID                string
	Start             time.Time
	Candidates        []Candidate
	SkippedCandidates int
}

// StatusSet is the set of candidate statuses that count as a match.
type StatusSet map[string]struct{}

func NewStatusSet(statuses ...string) StatusSet {
	s := make(StatusSet, len(statuses))
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

func (s StatusSet) Contains(status string) bool {
	_, ok := s[status]
	return ok
}

// DurationStats summarizes the durations of a batch of samples.
type DurationStats struct {
	AvgHours float64
	// Matched samples had at least one qualifying candidate and contribute
	// to AvgHours. Unmatched samples are excluded from it entirely.
	Matched   int
	Unmatched int
}

type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalMonth Interval = "month"
)

var ErrInvalidInterval = errors.New("invalid interval")

func (i Interval) Validate() error {
	if i != IntervalDay && i != IntervalMonth {
		return ErrInvalidInterval
	}
	return nil
}

// Truncate returns the start of the period containing t, in t's location.
func (i Interval) Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	if i == IntervalMonth {
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Next returns the start of the period after the one starting at start.
func (i Interval) Next(start time.Time) time.Time {
	if i == IntervalMonth {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

// Label formats a period start the way reports key it.
func (i Interval) Label(start time.Time) string {
	if i == IntervalMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

type PeriodStats struct {
	Label string
	Start time.Time
	DurationStats
}

type DurationReport struct {
	Interval          Interval
	Overall           DurationStats
	Periods           []PeriodStats
	SkippedCandidates int
}
