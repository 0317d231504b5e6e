package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	registerConfigDefaults()
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)

	cfg := loadConfig()

	if cfg.Resolver.ECPrecision != 2 {
		t.Errorf("expected default EC precision 2, got %d", cfg.Resolver.ECPrecision)
	}
	if cfg.Resolver.MinSynonymLength != 4 {
		t.Errorf("expected default min synonym length 4, got %d", cfg.Resolver.MinSynonymLength)
	}
	if cfg.Chain.MaxDepth != 50 {
		t.Errorf("expected default max depth 50, got %d", cfg.Chain.MaxDepth)
	}
	if cfg.Chain.Separator != ">" {
		t.Errorf("expected default chain separator >, got %q", cfg.Chain.Separator)
	}
	if !cfg.Chain.CacheEnabled {
		t.Error("expected chain cache enabled by default")
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	resetViper(t)

	content := `resolver:
  ec_precision: 3
  min_synonym_length: 6
chain:
  max_depth: 10
io:
  separator: ";"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	cfg := loadConfig()

	if cfg.Resolver.ECPrecision != 3 {
		t.Errorf("file ec_precision not applied: got %d", cfg.Resolver.ECPrecision)
	}
	if cfg.Resolver.MinSynonymLength != 6 {
		t.Errorf("file min_synonym_length not applied: got %d", cfg.Resolver.MinSynonymLength)
	}
	if cfg.Chain.MaxDepth != 10 {
		t.Errorf("file max_depth not applied: got %d", cfg.Chain.MaxDepth)
	}
	if cfg.IO.Separator != ";" {
		t.Errorf("file io.separator not applied: got %q", cfg.IO.Separator)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Chain.Separator != ">" {
		t.Errorf("unset key lost its default: got %q", cfg.Chain.Separator)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	resetViper(t)
	viper.SetEnvPrefix("PHARMACLASS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	content := "resolver:\n  ec_precision: 3\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	t.Setenv("PHARMACLASS_RESOLVER_EC_PRECISION", "1")
	t.Setenv("PHARMACLASS_CHAIN_MAX_DEPTH", "7")

	cfg := loadConfig()

	if cfg.Resolver.ECPrecision != 1 {
		t.Errorf("env var must beat the file: got %d", cfg.Resolver.ECPrecision)
	}
	if cfg.Chain.MaxDepth != 7 {
		t.Errorf("env var must beat the default: got %d", cfg.Chain.MaxDepth)
	}
}
