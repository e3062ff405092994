package services

import "github.com/google/uuid"

// IDGenerator produces opaque identifiers for posts and comments.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (version 4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
