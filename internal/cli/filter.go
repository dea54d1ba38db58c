package cli

import (
	"github.com/spf13/cobra"

	"github.com/dukaforge/ftag/internal/store"
)

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [TAG...]",
		Short: "List files by tag",
		Long: `List the files carrying at least one of the given tags, one per
line. With no tags, every tagged file is listed. A tag that was never used
matches nothing.

Example:
  ftag filter work
  ftag filter work draft
  ftag filter`,
		Args: cobra.ArbitraryArgs,
		RunE: runFilter,
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var cur store.Cursor
	switch len(args) {
	case 1:
		cur, err = st.FilesWithTag(args[0])
	default:
		cur, err = st.FilesWithAnyTag(args)
	}
	if err != nil {
		return err
	}
	return printCursor(cmd, cur)
}
