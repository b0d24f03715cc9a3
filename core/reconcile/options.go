package reconcile

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when one input collection holds two
// descriptors with the same key.
type DuplicatePolicy string

const (
	// LastWins keeps the last descriptor for a key. The key is ordered by its first occurrence.
	LastWins DuplicatePolicy = "last_wins"
	// FirstWins keeps the first descriptor for a key and ignores later ones.
	FirstWins DuplicatePolicy = "first_wins"
	// RejectDuplicates fails the Update with ErrDuplicateKey before any callback runs.
	RejectDuplicates DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy converts a configuration string into a DuplicatePolicy.
// An empty string selects LastWins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LastWins:
		return LastWins, nil
	case FirstWins:
		return FirstWins, nil
	case RejectDuplicates:
		return RejectDuplicates, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

type options struct {
	policy DuplicatePolicy
}

// Option configures a Reconciler.
type Option func(*options)

// WithDuplicatePolicy sets how duplicate keys in one input are resolved.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}
