package models

import (
	"time"

	"github.com/google/uuid"
)

// Descriptor is the desired state of one ghost as published in a snapshot.
type Descriptor struct {
	ID   uuid.UUID `json:"id" yaml:"id" toml:"id" msgpack:"id"`
	Name string    `json:"name" yaml:"name" toml:"name" msgpack:"name"`
}

// Key returns the identity of the ghost the descriptor describes.
func (d Descriptor) Key() uuid.UUID {
	return d.ID
}

// Ghost represents the 'ghosts' table. A row lives as long as its id is
// described by the latest snapshot.
type Ghost struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name        string    `gorm:"column:name;size:255" json:"name"`
	DisplayName string    `gorm:"column:display_name;size:255" json:"display_name"`
	Revision    int       `gorm:"column:revision" json:"revision"` // bumped by every update
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name used by Ghost to `ghosts`.
func (Ghost) TableName() string {
	return "ghosts"
}

// Columns lists the columns the ghosts feature relies on.
var Columns = []string{"id", "name", "display_name", "revision", "created_at", "updated_at"}

// SyncReport summarizes one reconcile cycle.
type SyncReport struct {
	Added   []uuid.UUID `json:"added"`
	Removed []uuid.UUID `json:"removed"`
	Updated []uuid.UUID `json:"updated"`
	Live    int         `json:"live"`
}
