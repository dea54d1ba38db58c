// Package types defines the store configuration and standard errors shared
// between the ftag CLI and the storage layer.
package types

// Config holds the parameters for store.Open.
type Config struct {
	// Database is the store filename searched for by discovery, or the
	// MemoryDatabase sentinel for a transient in-memory store.
	Database string `json:"database" yaml:"database"`

	// Directory, when non-empty, forces the store location: discovery is
	// skipped and the store is created in this directory if absent.
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`

	// ShowHidden disables suppression of dot-prefixed values in results.
	ShowHidden bool `json:"show_hidden" yaml:"show_hidden"`

	// Strategy selects the multi-tag filter query shape. Empty means
	// StrategyInList.
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// MemoryDatabase is the sentinel database name for a transient store with no
// on-disk persistence. It bypasses discovery and directory changes entirely.
const MemoryDatabase = ":memory:"

// DefaultDatabase is the store filename used when none is configured.
const DefaultDatabase = ".ftagdb"

// Multi-tag filter strategies. Both return the same deduplicated file set but
// differ in user-visible ordering, which is preserved per strategy rather
// than unified.
const (
	// StrategyInList builds one query with an IN (?, ...) placeholder list
	// and returns paths in descending order.
	StrategyInList = "inlist"

	// StrategyResolve resolves each tag name to its row ID first, unions
	// one query per ID, and returns paths in ascending order.
	StrategyResolve = "resolve"
)

// knownStrategies lists the strategies that Validate accepts.
var knownStrategies = map[string]bool{
	"":              true,
	StrategyInList:  true,
	StrategyResolve: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Database == "" {
		return ErrDatabaseEmpty
	}
	if !knownStrategies[c.Strategy] {
		return ErrStrategyUnknown
	}
	return nil
}
