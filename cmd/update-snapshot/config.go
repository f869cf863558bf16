package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/andreiashu/gazetteer"
)

// fileConfig is the layout of the --config TOML file.
type fileConfig struct {
	DataDir      string   `toml:"data_dir"`
	Snapshot     string   `toml:"snapshot"`
	HotCodes     []string `toml:"hot_codes"`
	BaseCurrency string   `toml:"base_currency"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// merge overrides file values with the flags set on the command line.
func merge(cmd *cobra.Command, cfg fileConfig) fileConfig {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("snapshot") {
		cfg.Snapshot = snapshotPath
	}
	if flags.Changed("hot") {
		cfg.HotCodes = hotCodes
	}
	if flags.Changed("base-currency") {
		cfg.BaseCurrency = baseCurrency
	}
	return cfg
}

func (cfg fileConfig) options() []gazetteer.Option {
	var opts []gazetteer.Option
	if cfg.DataDir != "" {
		opts = append(opts, gazetteer.WithDataDir(cfg.DataDir))
	}
	if cfg.Snapshot != "" {
		opts = append(opts, gazetteer.WithSnapshot(cfg.Snapshot))
	}
	if len(cfg.HotCodes) > 0 {
		opts = append(opts, gazetteer.WithHotCodes(cfg.HotCodes...))
	}
	if cfg.BaseCurrency != "" {
		opts = append(opts, gazetteer.WithBaseCurrency(cfg.BaseCurrency))
	}
	return opts
}

// options returns the Gazetteer options selected by the config file and flags.
func options(cmd *cobra.Command) ([]gazetteer.Option, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return merge(cmd, cfg).options(), nil
}
