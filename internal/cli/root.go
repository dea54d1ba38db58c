// Package cli implements the ftag command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukaforge/ftag/internal/store"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	database   string
	directory  string
	configDir  string
	strategy   string
	showHidden bool
	verbose    bool
}

var flags rootFlags

// NewRootCmd creates the top-level "ftag" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ftag",
		Short: "Tag and filter your files",
		Long: `ftag attaches free-form tags to files and retrieves files by tag
or tags by file. Tags live in a store file found by searching the current
directory and its ancestors.`,
		// Subcommand errors are reported by Execute, not cobra.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.database, "database", "d", "", "store filename (default: .ftagdb, or :memory: for a transient store)")
	root.PersistentFlags().StringVar(&flags.directory, "directory", "", "use this directory instead of searching for the store")
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .ftag)")
	root.PersistentFlags().StringVar(&flags.strategy, "strategy", "", "multi-tag filter strategy (inlist, resolve)")
	root.PersistentFlags().BoolVarP(&flags.showHidden, "all", "a", false, "include hidden (dot-prefixed) files and tags in results")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "print the resolved store location to stderr")

	root.AddCommand(newTagCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ftag: %s\n", err)
		return 1
	}
	return 0
}

// openStore opens the store described by the flags and config file. The
// caller must defer Close on the returned store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	if flags.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "using store %s\n", st.Location())
	}
	return st, nil
}

// printCursor drains a result cursor to the command's stdout, one value per
// line, and releases it.
func printCursor(cmd *cobra.Command, cur store.Cursor) error {
	defer cur.Close()

	for {
		value, ok := cur.Next()
		if !ok {
			break
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	if err := cur.Err(); err != nil {
		return fmt.Errorf("read results: %w", err)
	}
	return nil
}
