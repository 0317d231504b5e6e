package model

// Config holds all pipeline configuration.
// Hierarchy: CLI flags > PHARMACLASS_* env vars > config file > defaults.
type Config struct {
	Reference   ReferenceConfig   `yaml:"reference"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Chain       ChainConfig       `yaml:"chain"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	IO          IOConfig          `yaml:"io"`
	Output      OutputConfig      `yaml:"output"`
}

// ReferenceConfig locates the two reference tables.
type ReferenceConfig struct {
	TargetsPath  string `yaml:"targets_path"`
	FamiliesPath string `yaml:"families_path"`
}

// ResolverConfig tunes the identifier resolution strategies.
type ResolverConfig struct {
	// ECPrecision is the number of leading dot-separated EC components
	// that must match for the EC fallback (e.g. 2 matches "2.7.*").
	ECPrecision int `yaml:"ec_precision"`
	// MinSynonymLength rejects very short synonym tokens that would
	// otherwise match half the table.
	MinSynonymLength int `yaml:"min_synonym_length"`
	// NameHeuristic enables the keyword-based type guess as a last
	// resort after every identifier strategy has failed.
	NameHeuristic bool `yaml:"name_heuristic"`
}

// ChainConfig tunes family hierarchy traversal.
type ChainConfig struct {
	MaxDepth  int    `yaml:"max_depth"`
	Separator string `yaml:"separator"`
	// CacheEnabled memoizes built chains; many targets share leaf families.
	CacheEnabled bool `yaml:"cache_enabled"`
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	// Workers <= 0 selects one worker per CPU.
	Workers int `yaml:"workers"`
}

// IOConfig controls delimited-text parsing.
type IOConfig struct {
	Separator string `yaml:"separator"`
	Encoding  string `yaml:"encoding"`
}

// OutputConfig controls CLI reporting.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			ECPrecision:      2,
			MinSynonymLength: 4,
			NameHeuristic:    false,
		},
		Chain: ChainConfig{
			MaxDepth:     50,
			Separator:    ">",
			CacheEnabled: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 0,
		},
		IO: IOConfig{
			Separator: ",",
			Encoding:  "utf-8",
		},
	}
}
