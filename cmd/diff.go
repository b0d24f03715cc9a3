package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"descriptor-sync/core/setdiff"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/feature/ghosts/models"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var diffShowAll bool

// diffCmd compares two local ghost snapshots.
var diffCmd = &cobra.Command{
	Use:   "diff <from> <to>",
	Short: "Compare two ghost snapshots",
	Long: `Compare two ghost snapshot files and print the ghosts a sync from <from> to <to>
would remove (-), add (+) and rename (~). Files may be json, yaml, toml or msgpack.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(cmd.OutOrStdout(), args[0], args[1], diffShowAll)
	},
}

func init() {
	diffCmd.Flags().BoolVarP(&diffShowAll, "all", "a", false, "Also print unchanged ghosts")
	RootCmd.AddCommand(diffCmd)
}

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
	changedColor = color.New(color.FgYellow)
	keptColor    = color.New(color.Faint)
)

func runDiff(out io.Writer, fromPath, toPath string, showAll bool) error {
	from, err := snapshot.LoadFile[models.Descriptor](fromPath)
	if err != nil {
		return fmt.Errorf("%s: %w", fromPath, err)
	}
	to, err := snapshot.LoadFile[models.Descriptor](toPath)
	if err != nil {
		return fmt.Errorf("%s: %w", toPath, err)
	}

	fromNames, toNames := namesByID(from), namesByID(to)
	result := setdiff.Diff(setdiff.New(keysOf(fromNames)...), setdiff.New(keysOf(toNames)...))

	for _, id := range sortedIDs(result.Removed) {
		removedColor.Fprintf(out, "- %s %s\n", id, fromNames[id])
	}
	for _, id := range sortedIDs(result.Added) {
		addedColor.Fprintf(out, "+ %s %s\n", id, toNames[id])
	}

	var changed, unchanged int
	for _, id := range sortedIDs(result.Kept) {
		if fromNames[id] != toNames[id] {
			changed++
			changedColor.Fprintf(out, "~ %s %s -> %s\n", id, fromNames[id], toNames[id])
			continue
		}
		unchanged++
		if showAll {
			keptColor.Fprintf(out, "= %s %s\n", id, toNames[id])
		}
	}

	fmt.Fprintf(out, "\n%d added, %d removed, %d renamed, %d unchanged\n",
		result.Added.Len(), result.Removed.Len(), changed, unchanged)
	return nil
}

// namesByID indexes descriptors by id. A later duplicate overrides an earlier one.
func namesByID(descriptors []models.Descriptor) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(descriptors))
	for _, d := range descriptors {
		names[d.ID] = d.Name
	}
	return names
}

func keysOf(m map[uuid.UUID]string) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// sortedIDs returns the ids of set ordered by their string form.
func sortedIDs(set setdiff.Set[uuid.UUID]) []uuid.UUID {
	ids := set.Slice()
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}
