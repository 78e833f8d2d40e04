package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID()

	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
