package ports

import (
	"context"
	"time"
)

// KnowledgeGraphRecorder is the auxiliary indexing collaborator.
// All writes are best-effort: the orchestrator logs and swallows
// failures, because losing an index entry is preferable to failing a
// milestone that already moved physical state.
type KnowledgeGraphRecorder interface {
	// UpsertFact records the latest value of a keyed fact, replacing
	// any prior value for the same (kind, keys) pair. Callers never
	// manage prior-fact removal themselves.
	UpsertFact(ctx context.Context, kind string, keys []string, value any, ts time.Time) error

	// RecordEvent appends a timestamped event to the (kind, keys)
	// history.
	RecordEvent(ctx context.Context, kind string, keys []string, value any, ts time.Time) error
}
