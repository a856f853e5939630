package task

import (
	"context"
	"time"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Task CRUD
	Create(ctx context.Context, input CreateInput) (CreateOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id int64) (DetailOutput, error)
	Update(ctx context.Context, input UpdateInput) (UpdateOutput, error)
	Delete(ctx context.Context, id int64) (DeleteOutput, error)

	// ExtractAndCreate turns free text into a persisted task through the generation service.
	ExtractAndCreate(ctx context.Context, input ExtractInput) (ExtractOutput, error)

	// Calendar groups tasks due in [From, To) by local day.
	Calendar(ctx context.Context, input CalendarInput) (CalendarOutput, error)

	// Digest returns unfinished tasks due today and overdue ones.
	Digest(ctx context.Context, now time.Time) (DigestOutput, error)
}

// Generator is the text-generation capability used by the extractor.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
