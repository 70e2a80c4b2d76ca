// Package journal keeps a local audit trail of the mutating actions taken
// from the console (create, update, status change, delete) and how each one
// ended. It is never consulted for what the users table shows.
//
// The store is a SQLite file migrated with goose at open time.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionStatus Action = "status"
	ActionDelete Action = "delete"
)

type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Entry is one journal line.
type Entry struct {
	ID        uuid.UUID
	Action    Action
	UserID    int64
	Username  string
	Outcome   Outcome
	Detail    string
	CreatedAt time.Time
}

// Repository stores and lists journal entries.
type Repository interface {
	// Append stores e. A zero ID or CreatedAt is filled in.
	Append(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Clear drops every entry.
	Clear(ctx context.Context) error
}
