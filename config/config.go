// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
)

const (
	configDir  = "config"
	configFile = "starledger.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
	BoltStorage   StorageType = "bolt"
)

type Config struct {
	RootDir string `toml:"-" mapstructure:"-"`

	// LogLevel is the minimum level emitted by the logger, e.g. "info".
	LogLevel string `toml:"log-level" mapstructure:"log-level"`

	// LogFormat is "plain" or "json".
	LogFormat string `toml:"log-format" mapstructure:"log-format"`

	// ChallengeWindow is how long a signed ownership challenge remains
	// acceptable.
	ChallengeWindow time.Duration `toml:"challenge-window" mapstructure:"challenge-window"`

	Storage   Storage   `toml:"storage" mapstructure:"storage"`
	Snapshots Snapshots `toml:"snapshots" mapstructure:"snapshots"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

type Snapshots struct {
	// Enabled controls whether the ledger is written to disk on shutdown.
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// Directory is the directory to store snapshots in
	Directory string `toml:"directory" mapstructure:"directory"`
}

func Default() *Config {
	c := new(Config)
	c.LogLevel = "info"
	c.LogFormat = "plain"
	c.ChallengeWindow = 5 * time.Minute
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "starledger.db")
	c.Snapshots.Enabled = true
	c.Snapshots.Directory = "snapshots"
	return c
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func Load(dir string) (*Config, error) {
	config := new(Config)
	err := load(dir, filepath.Join(dir, configDir, configFile), config)
	if err != nil {
		return nil, err
	}

	config.RootDir = dir
	return config, nil
}

func Store(config *Config) error {
	dir := filepath.Join(config.RootDir, configDir)
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, configFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(*config)
}

func load(dir, file string, c interface{}) error {
	v := viper.New()
	v.SetConfigFile(file)
	v.AddConfigPath(dir)
	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("read: %v", err)
	}

	err = v.Unmarshal(c)
	if err != nil {
		return fmt.Errorf("unmarshal: %v", err)
	}

	return nil
}
