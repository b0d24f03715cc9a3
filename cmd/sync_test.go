package cmd

import (
	"bytes"
	"strings"
	"testing"

	"descriptor-sync/core/setdiff"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{"Yes flag", "", true, true},
		{"Typed yes", "yes\n", false, true},
		{"Typed yes without newline", "yes", false, true},
		{"Typed no", "no\n", false, false},
		{"Empty input", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirmDestructiveAction(strings.NewReader(tt.input), &out, tt.yes)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestPrintSyncPlan(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	removed := setdiff.New[uuid.UUID]()
	for i := 0; i < 7; i++ {
		removed.Add(uuid.New())
	}
	plan := setdiff.Result[uuid.UUID]{
		Added:   setdiff.New(uuid.New()),
		Removed: removed,
		Kept:    setdiff.New[uuid.UUID](),
	}

	printSyncPlan(zap.New(core), plan)

	assert.Equal(t, 1, logs.FilterMessage("Sync plan").Len())
	assert.Equal(t, 5, logs.FilterMessage("Ghost will be removed").Len())

	more := logs.FilterMessage("Additional removals not shown").All()
	if assert.Len(t, more, 1) {
		assert.EqualValues(t, 2, more[0].ContextMap()["count"])
	}
}
