package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDescriptorKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a0e-8d7b-4c55-9a43-2f7e0b1d9c11")
	assert.Equal(t, id, Descriptor{ID: id, Name: "Casper"}.Key())
}

func TestGhostTableName(t *testing.T) {
	assert.Equal(t, "ghosts", Ghost{}.TableName())
}
