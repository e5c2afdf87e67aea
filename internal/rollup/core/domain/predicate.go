package domain

import (
	"errors"
	"strings"
)

var ErrInvalidPredicate = errors.New("invalid filter predicate")

type FilterField string

const (
	FieldCategory  FilterField = "category"
	FieldSubEntity FilterField = "sub_entity"
	FieldEntity    FilterField = "entity"
)

type MatchKind string

const (
	MatchPrefix MatchKind = "prefix"
	// MatchGenre matches campaign codes of the form "<genre>-...".
	MatchGenre  MatchKind = "genre"
	MatchEquals MatchKind = "equals"
	MatchIn     MatchKind = "in"
)

// FilterPredicate narrows the leaf set before a rollup is rebuilt.
type FilterPredicate struct {
	Field  FilterField `json:"field"`
	Match  MatchKind   `json:"match"`
	Values []string    `json:"values"`
}

func (p FilterPredicate) Validate() error {
	switch p.Field {
	case FieldCategory, FieldSubEntity, FieldEntity:
	default:
		return ErrInvalidPredicate
	}
	switch p.Match {
	case MatchPrefix, MatchGenre, MatchEquals:
		if len(p.Values) != 1 {
			return ErrInvalidPredicate
		}
	case MatchIn:
		if len(p.Values) == 0 {
			return ErrInvalidPredicate
		}
	default:
		return ErrInvalidPredicate
	}
	for _, v := range p.Values {
		if v == "" {
			return ErrInvalidPredicate
		}
	}
	return nil
}

// Matches applies the matcher to a value. A nil value never matches.
func (p FilterPredicate) Matches(v *string) bool {
	if v == nil {
		return false
	}
	switch p.Match {
	case MatchPrefix:
		return strings.HasPrefix(*v, p.Values[0])
	case MatchGenre:
		return strings.HasPrefix(*v, p.Values[0]+"-")
	case MatchEquals:
		return *v == p.Values[0]
	case MatchIn:
		for _, want := range p.Values {
			if *v == want {
				return true
			}
		}
	}
	return false
}

// MatchesFact applies the predicate to the field it targets on f.
func (p FilterPredicate) MatchesFact(f LeafFact) bool {
	switch p.Field {
	case FieldCategory:
		return p.Matches(f.Category)
	case FieldSubEntity:
		key := f.SubEntityKey()
		return p.Matches(&key)
	case FieldEntity:
		return p.Matches(&f.EntityID)
	}
	return false
}

// MatchesSubEntity applies the predicate to a configured sub-entity of
// the entity entityID.
func (p FilterPredicate) MatchesSubEntity(entityID string, s CatalogSubEntity) bool {
	switch p.Field {
	case FieldCategory:
		return p.Matches(s.Category)
	case FieldSubEntity:
		return p.Matches(&s.ID)
	case FieldEntity:
		return p.Matches(&entityID)
	}
	return false
}
