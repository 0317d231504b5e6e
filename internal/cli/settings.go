package cli

import (
	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/spf13/viper"
)

// registerConfigDefaults seeds viper with the built-in defaults so the
// config file and PHARMACLASS_* env vars layer over them key by key.
func registerConfigDefaults() {
	d := model.DefaultConfig()
	viper.SetDefault("reference.targets_path", d.Reference.TargetsPath)
	viper.SetDefault("reference.families_path", d.Reference.FamiliesPath)
	viper.SetDefault("resolver.ec_precision", d.Resolver.ECPrecision)
	viper.SetDefault("resolver.min_synonym_length", d.Resolver.MinSynonymLength)
	viper.SetDefault("resolver.name_heuristic", d.Resolver.NameHeuristic)
	viper.SetDefault("chain.max_depth", d.Chain.MaxDepth)
	viper.SetDefault("chain.separator", d.Chain.Separator)
	viper.SetDefault("chain.cache_enabled", d.Chain.CacheEnabled)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("io.separator", d.IO.Separator)
	viper.SetDefault("io.encoding", d.IO.Encoding)
}

// loadConfig resolves the merged configuration from viper: built-in
// defaults, then the config file, then environment variables. Commands
// apply their flag overrides on top, but only for flags the user set.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Reference.TargetsPath = viper.GetString("reference.targets_path")
	cfg.Reference.FamiliesPath = viper.GetString("reference.families_path")
	cfg.Resolver.ECPrecision = viper.GetInt("resolver.ec_precision")
	cfg.Resolver.MinSynonymLength = viper.GetInt("resolver.min_synonym_length")
	cfg.Resolver.NameHeuristic = viper.GetBool("resolver.name_heuristic")
	cfg.Chain.MaxDepth = viper.GetInt("chain.max_depth")
	cfg.Chain.Separator = viper.GetString("chain.separator")
	cfg.Chain.CacheEnabled = viper.GetBool("chain.cache_enabled")
	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	cfg.IO.Separator = viper.GetString("io.separator")
	cfg.IO.Encoding = viper.GetString("io.encoding")
	cfg.Output.Verbose = viper.GetBool("verbose")
	return cfg
}
