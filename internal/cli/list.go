package cli

import (
	"github.com/spf13/cobra"

	"github.com/dukaforge/ftag/internal/store"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [FILE]",
		Short: "List tags",
		Long: `List the tags on a file, one per line. With no file, every tag in
the store is listed.

Example:
  ftag list notes.txt
  ftag list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var cur store.Cursor
	if len(args) == 0 {
		cur, err = st.AllTags()
	} else {
		cur, err = st.TagsForFile(args[0])
	}
	if err != nil {
		return err
	}
	return printCursor(cmd, cur)
}
