// Package models defines the descriptor, table and report types of the ghosts feature.
package models
