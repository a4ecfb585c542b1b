// Package domain holds the entities and repository contracts of the
// note-sharing model.
package domain

import (
	"errors"
)

// Storage-agnostic sentinel errors returned by repositories.
// 存储无关的仓储哨兵错误
var (
	// ErrNotFound the requested row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate a uniqueness constraint rejected the write
	ErrDuplicate = errors.New("duplicate record")
)
