// Package storage defines the persistence contracts for the simulation:
// named axis snapshots and an append-only trigger journal.
package storage

import (
	"context"
	"time"

	"github.com/mgracey/rapport/internal/axis"
	apperrors "github.com/mgracey/rapport/internal/errors"
)

// ErrNotFound is returned when a named snapshot does not exist.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// TriggerRecord is one journaled trigger emission.
type TriggerRecord struct {
	ID        int64
	Name      string
	Source    string
	Payload   map[string]any
	EmittedAt time.Time
}

// SnapshotStore persists named axis snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, name string, snapshot axis.Snapshot) error
	LoadSnapshot(ctx context.Context, name string) (axis.Snapshot, error)
}

// TriggerJournal records every accepted trigger emission for later audit.
type TriggerJournal interface {
	AppendTrigger(ctx context.Context, record TriggerRecord) error
	ListTriggers(ctx context.Context, limit int) ([]TriggerRecord, error)
}

// Store is the full persistence surface the session layer expects.
type Store interface {
	SnapshotStore
	TriggerJournal
	Close() error
}
