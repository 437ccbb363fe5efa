package persistence

import (
	"errors"

	"antworld/models"
)

// ErrLayoutNotFound is returned when a source has no layout of that name
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutSource provides read-only world seeds at startup
type LayoutSource interface {
	LoadLayout(name string) (*models.Layout, error)
	Close() error
}
