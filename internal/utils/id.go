package utils

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a random UUIDv4 as 32 lowercase hex characters, without dashes
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
