package domain

import (
	"context"
	"time"
)

// Note content record.
type Note struct {
	ID               int64
	Title            string
	Body             string
	CreatedByUID     int64
	LastUpdatedByUID int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NoteRepository is the note store. Every mutation is reached only after
// the access layer verified a grant row for the acting user.
// NoteRepository 笔记存储，所有变更都先经过授权层校验
type NoteRepository interface {
	// CreateWithGrant inserts the note and the creator's grant row as a
	// single atomic unit of work: if either write fails, neither persists.
	CreateWithGrant(ctx context.Context, note *Note) (*Note, error)

	// GetByID returns ErrNotFound when the note does not exist.
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Update overwrites title and body and records the updater. The write
	// is conditioned on the note id still existing; zero affected rows
	// yields ErrNotFound, never a silent success. CreatedByUID is never
	// touched.
	Update(ctx context.Context, id int64, title, body string, updaterUID int64) (*Note, error)

	// DeleteCascade removes the note together with all of its grant rows.
	DeleteCascade(ctx context.Context, id int64) error

	// ListByUID returns every note the user holds a grant row for.
	// Order is implementation-defined; callers must not depend on it.
	ListByUID(ctx context.Context, uid int64) ([]*Note, error)
}

// GrantRepository maintains the many-to-many ownership/sharing relation.
type GrantRepository interface {
	// HasAccess reports whether a grant row exists for the pair.
	HasAccess(ctx context.Context, uid, noteID int64) (bool, error)

	// Create adds a grant row. Returns ErrDuplicate when the pair already
	// exists (the composite unique index is the backstop).
	Create(ctx context.Context, uid, noteID int64) error
}
