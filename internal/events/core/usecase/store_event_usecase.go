package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"funnel-metrics-service/internal/events/core/domain"
	"funnel-metrics-service/internal/events/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrFutureTime   = errors.New("timestamp cannot be in the future")
)

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
	now  func() time.Time
}

func NewStoreEventUseCase(repo ports.EventRepositoryPort) *StoreEventUseCase {
	return &StoreEventUseCase{repo: repo, now: time.Now}
}

type StoreEventInput struct {
	EventName   string `validate:"required,oneof=page_view click job_view registration application engagement_summary"`
	EntityID    string `validate:"required,max=64"`
	SubEntityID string `validate:"max=64"`
	SessionID   string `validate:"required_without=UserID,max=128"`
	UserID      string `validate:"max=128"`
	Category    string `validate:"max=64"`
	Timestamp   int64  `validate:"gt=0"`
	Tags        []string
	Metadata    map[string]any
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {

	if err := uc.validateInput(in); err != nil {
		return false, err
	}

	eventTime := time.Unix(in.Timestamp, 0).UTC()

	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Metadata == nil {
		in.Metadata = map[string]any{}
	}
	// Sub-entities without an explicit category group under their own code.
	if in.Category == "" {
		in.Category = in.SubEntityID
	}

	e := &domain.Event{
		EventID:     uuid.New(),
		EventName:   in.EventName,
		EntityID:    in.EntityID,
		SubEntityID: in.SubEntityID,
		SessionID:   in.SessionID,
		UserID:      in.UserID,
		Category:    in.Category,
		EventTime:   eventTime,
		Tags:        in.Tags,
		Metadata:    in.Metadata,
		DedupeKey:   buildDedupeKey(in, eventTime),
	}

	created, err := uc.repo.InsertEvent(ctx, e)
	if err != nil {
		return false, err
	}

	return created, nil
}

func buildDedupeKey(in StoreEventInput, t time.Time) string {
	// event_name + entity + sub_entity + session + user + unix_timestamp
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		in.EventName,
		in.EntityID,
		in.SubEntityID,
		in.SessionID,
		in.UserID,
		t.Unix(),
	)
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created    int
	Duplicates int
}

// BulkCreateEvents validates the whole batch before writing anything.
func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	var res BulkCreateEventsResult

	for i, ev := range in.Events {
		if err := uc.validateInput(ev); err != nil {
			return res, fmt.Errorf("events[%d]: %w", i, err)
		}
	}

	for _, ev := range in.Events {
		ok, err := uc.Execute(ctx, ev)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreEventUseCase) validateInput(in StoreEventInput) error {
	if err := getValidator().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return fmt.Errorf("%w: %s", ErrInvalidEvent, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	if in.Timestamp > uc.now().Unix() {
		return ErrFutureTime
	}

	return nil
}
