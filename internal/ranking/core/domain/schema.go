package domain

import (
	"errors"
	"fmt"
)

// SortKind says where a sort field is evaluated.
type SortKind int

const (
	// Stored fields are columns the record source can order and page by.
	Stored SortKind = iota
	// Derived fields are computed after fetching, so ranking by them
	// requires the whole candidate set in memory.
	Derived
)

func (k SortKind) String() string {
	if k == Derived {
		return "derived"
	}
	return "stored"
}

type SortField string

const (
	SortID             SortField = "id"
	SortName           SortField = "name"
	SortCreatedAt      SortField = "created_at"
	SortAvgRating      SortField = "avg_rating"
	SortReviewCount    SortField = "review_count"
	SortTotalWorkCount SortField = "total_work_count"
	SortDistance       SortField = "distance"
)

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

func (d SortDir) Valid() bool { return d == Asc || d == Desc }

var ErrUnknownSortField = errors.New("unknown sort field")

// Schema tags every sortable field with its kind. It is built once at
// startup and never re-inferred per request.
type Schema struct {
	kinds map[SortField]SortKind
}

// NewSchema builds a schema from an explicit field list.
func NewSchema(fields map[SortField]SortKind) Schema {
	kinds := make(map[SortField]SortKind, len(fields))
	for f, k := range fields {
		kinds[f] = k
	}
	return Schema{kinds: kinds}
}

// WorkerSchema is the schema of the worker listing.
func WorkerSchema() Schema {
	return NewSchema(map[SortField]SortKind{
		SortID:             Stored,
		SortName:           Stored,
		SortCreatedAt:      Stored,
		SortAvgRating:      Derived,
		SortReviewCount:    Derived,
		SortTotalWorkCount: Derived,
		SortDistance:       Derived,
	})
}

func (s Schema) Kind(f SortField) (SortKind, error) {
	k, ok := s.kinds[f]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSortField, f)
	}
	return k, nil
}

// ErrUnboundedDerivedSort is matched by every *UnboundedDerivedSortError.
var ErrUnboundedDerivedSort = errors.New("derived sort over too many candidates")

// UnboundedDerivedSortError rejects a derived-mode request whose candidate
// set exceeds the configured ceiling.
type UnboundedDerivedSortError struct {
	Field      SortField
	Candidates int64
	Ceiling    int
}

func (e *UnboundedDerivedSortError) Error() string {
	return fmt.Sprintf("sorting by %s needs %d candidates in memory, ceiling is %d; narrow the filter",
		e.Field, e.Candidates, e.Ceiling)
}

func (e *UnboundedDerivedSortError) Is(target error) bool {
	return target == ErrUnboundedDerivedSort
}
