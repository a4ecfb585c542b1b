package domain

import (
	"context"
	"time"
)

// User identity plus the opaque password verifier. The verifier never
// leaves this layer.
type User struct {
	UID       int64
	Email     string
	Password  string
	CreatedAt time.Time
}

// UserRepository is the credential store. No update or delete is part of
// the public contract.
// UserRepository 凭证存储，公开契约中没有更新和删除
type UserRepository interface {
	// GetByEmail returns ErrNotFound when no user carries the email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUID returns ErrNotFound when the account no longer exists.
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// Create persists a new user. Returns ErrDuplicate when the email is
	// already taken; the unique index is the authoritative guarantee, not
	// any pre-check performed by the caller.
	Create(ctx context.Context, user *User) (*User, error)
}
