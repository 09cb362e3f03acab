package types

// CatalogConfig holds settings for loading the paper catalog.
type CatalogConfig struct {
	// DataDir is the root directory containing one subdirectory per venue
	// (e.g. data/cvpr/cvpr2024.json).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// HistoryConfig holds settings for the search-history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default: history/compass.db).
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxEntries is the default number of entries shown by the history
	// command (default 20).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// ServerConfig holds settings for the browse API server.
type ServerConfig struct {
	// Addr is the listen address (default "localhost:8385").
	Addr string `json:"addr" yaml:"addr"`

	// LogLevel selects the slog level: debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// CompassConfig groups all component configurations.
type CompassConfig struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	History HistoryConfig `json:"history" yaml:"history"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
