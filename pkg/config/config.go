// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings of the swiss command.
//
// Settings are layered, later sources overriding earlier ones: built in
// defaults, the YAML config file, a .env file in the working directory,
// and finally the process environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/swiss/pkg/common"
	"laptudirm.com/x/swiss/pkg/tournament/schedule"
)

// DefaultFile is written to the config file location on first use.
//
//go:embed default.yaml
var DefaultFile []byte

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`

	// Scheduler names the pairing scheduler.
	Scheduler string `yaml:"scheduler"`
}

type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{Path: common.DatabaseFile},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "swiss",
			},
		},
		Log:       LogConfig{Level: logrus.InfoLevel.String()},
		Scheduler: "swiss",
	}
}

// Seed writes DefaultFile to path unless a file is already there.
func Seed(path string) error {
	if err := common.TryCreate(path, DefaultFile); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}

	return nil
}

// Load reads the configuration like Read and validates the result.
func Load(path string) (Config, error) {
	config, err := Read(path)
	if err != nil {
		return Config{}, err
	}

	return config, config.Validate()
}

// Read builds the configuration from the config file at path, the .env
// file in the working directory and the environment. A missing config or
// .env file is not an error. The result is not validated, so that later
// layers such as command line flags can still complete it.
func Read(path string) (Config, error) {
	config := Default()

	if err := config.readFile(path); err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	if err := config.readEnv(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (config *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Trace("No config file found")
		return nil
	case err != nil:
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("Loaded config file")
	return nil
}

// loadDotEnv copies the variables in file into the environment, keeping
// any that are already set.
func loadDotEnv(file string) error {
	err := godotenv.Load(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", file, err)
	}

	logrus.WithField("path", file).Debug("Loaded environment file")
	return nil
}

func (config *Config) readEnv() error {
	setFromEnv(&config.Store.Driver, "SWISS_STORE")
	setFromEnv(&config.Store.SQLite.Path, "SWISS_SQLITE_PATH")
	setFromEnv(&config.Store.Postgres.DSN, "DATABASE_URL")
	setFromEnv(&config.Store.Postgres.DSN, "SWISS_POSTGRES_DSN")
	setFromEnv(&config.Store.Redis.Addr, "REDIS_ADDR")
	setFromEnv(&config.Store.Redis.Prefix, "SWISS_REDIS_PREFIX")
	setFromEnv(&config.Log.Level, "SWISS_LOG_LEVEL")
	setFromEnv(&config.Scheduler, "SWISS_SCHEDULER")

	if db := os.Getenv("REDIS_DB"); db != "" {
		index, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		config.Store.Redis.DB = index
	}

	return nil
}

func setFromEnv(field *string, key string) {
	if value := os.Getenv(key); value != "" {
		*field = value
	}
}

// SetDSN points the configured driver at dsn: a file path for sqlite, a
// connection string for postgres and an address for redis.
func (config *Config) SetDSN(dsn string) {
	switch config.Store.Driver {
	case DriverSQLite:
		config.Store.SQLite.Path = dsn
	case DriverPostgres:
		config.Store.Postgres.DSN = dsn
	case DriverRedis:
		config.Store.Redis.Addr = dsn
	}
}

// Validate reports the first setting that cannot be used.
func (config *Config) Validate() error {
	switch config.Store.Driver {
	case DriverSQLite:
		if config.Store.SQLite.Path == "" {
			return errors.New("config: store.sqlite.path is empty")
		}
	case DriverPostgres:
		if config.Store.Postgres.DSN == "" {
			return errors.New("config: store.postgres.dsn is empty")
		}
	case DriverRedis:
		if config.Store.Redis.Addr == "" {
			return errors.New("config: store.redis.addr is empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown store driver %q", config.Store.Driver)
	}

	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if _, err := schedule.New(config.Scheduler); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// LogLevel returns the configured logrus level, or Info if it is invalid.
func (config *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}
