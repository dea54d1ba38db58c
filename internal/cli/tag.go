package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag FILE TAG...",
		Short: "Attach tags to a file",
		Long: `Attach one or more tags to a file identified by its path relative
to the store's directory. The file and tags are created on first use;
re-tagging an already-tagged pair is a no-op.

Example:
  ftag tag notes.txt work draft`,
		Args: cobra.MinimumNArgs(2),
		RunE: runTag,
	}
}

func runTag(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	file := args[0]
	for _, tag := range args[1:] {
		if err := st.Tag(file, tag); err != nil {
			return fmt.Errorf("tag %q: %w", tag, err)
		}
	}
	return nil
}
