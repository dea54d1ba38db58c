package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dukaforge/ftag/internal/store"
	"github.com/dukaforge/ftag/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Database string `yaml:"database"`
	Strategy string `yaml:"strategy"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a store in the current directory",
		Long: `Create the store file in the current directory (or the one given
by --directory) and write a default config.yaml to the config directory.
Running init where a store already exists is a no-op.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := storeConfig()
	if err != nil {
		return err
	}
	if cfg.Directory == "" {
		cfg.Directory = "."
	}

	if cfg.Database != types.MemoryDatabase {
		if err := writeConfigIfMissing(resolveConfigDir(), cfg); err != nil {
			return err
		}
	}

	// Opening in forced directory mode creates the store file and its
	// schema if absent.
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	location := st.Location()
	if err := st.Close(); err != nil {
		return fmt.Errorf("finalize store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ftag store at %s\n", location)
	return nil
}

// writeConfigIfMissing creates the config directory and a config.yaml with
// the effective values if the file does not exist. If it already exists, the
// function returns nil (idempotent).
func writeConfigIfMissing(configDir string, cfg types.Config) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileName+"."+configFileType)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	out := configFile{
		Database: cfg.Database,
		Strategy: cfg.Strategy,
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
