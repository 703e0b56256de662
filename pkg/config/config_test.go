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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/common"
)

var envKeys = []string{
	"SWISS_STORE", "SWISS_SQLITE_PATH", "SWISS_POSTGRES_DSN", "DATABASE_URL",
	"REDIS_ADDR", "REDIS_DB", "SWISS_REDIS_PREFIX", "SWISS_LOG_LEVEL",
	"SWISS_SCHEDULER",
}

// clearEnv blanks every variable Load reads for the rest of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), config)
	assert.Equal(t, DriverSQLite, config.Store.Driver)
	assert.Equal(t, common.DatabaseFile, config.Store.SQLite.Path)
	assert.Equal(t, logrus.InfoLevel, config.LogLevel())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
store:
  driver: redis
  redis:
    addr: cache:6379
    db: 3
log:
  level: debug
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, config.Store.Driver)
	assert.Equal(t, "cache:6379", config.Store.Redis.Addr)
	assert.Equal(t, 3, config.Store.Redis.DB)
	assert.Equal(t, "swiss", config.Store.Redis.Prefix, "unset keys keep their defaults")
	assert.Equal(t, logrus.DebugLevel, config.LogLevel())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
store:
  driver: sqlite
  sqlite:
    path: /from/file.db
`)

	t.Setenv("SWISS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://fallback")
	t.Setenv("SWISS_POSTGRES_DSN", "postgres://primary")
	t.Setenv("REDIS_DB", "2")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, config.Store.Driver)
	assert.Equal(t, "postgres://primary", config.Store.Postgres.DSN)
	assert.Equal(t, "/from/file.db", config.Store.SQLite.Path)
	assert.Equal(t, 2, config.Store.Redis.DB)
}

func TestLoad_DatabaseURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("SWISS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://fallback")

	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://fallback", config.Store.Postgres.DSN)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad yaml", file: "store: [unclosed"},
		{name: "unknown driver", env: map[string]string{"SWISS_STORE": "mongo"}},
		{name: "postgres without dsn", env: map[string]string{"SWISS_STORE": "postgres"}},
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "one"}},
		{name: "bad log level", env: map[string]string{"SWISS_LOG_LEVEL": "loud"}},
		{name: "bad scheduler", env: map[string]string{"SWISS_SCHEDULER": "round-robin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "SWISS_TEST_DOTENV_VALUE"
	t.Cleanup(func() { os.Unsetenv(key) })

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte(key+"=from-file\n"), 0644))

	require.NoError(t, loadDotEnv(file))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSetDSN(t *testing.T) {
	config := Default()

	config.SetDSN("/tmp/a.db")
	assert.Equal(t, "/tmp/a.db", config.Store.SQLite.Path)

	config.Store.Driver = DriverPostgres
	config.SetDSN("postgres://db")
	assert.Equal(t, "postgres://db", config.Store.Postgres.DSN)

	config.Store.Driver = DriverRedis
	config.SetDSN("cache:6379")
	assert.Equal(t, "cache:6379", config.Store.Redis.Addr)
}

func TestRead_DefersValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("SWISS_STORE", "postgres")

	config, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Error(t, config.Validate(), "postgres without a dsn is incomplete")

	config.SetDSN("postgres://db")
	assert.NoError(t, config.Validate())
}

func TestSeed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "swiss", "config.yaml")

	require.NoError(t, Seed(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, data)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), config, "the seeded file keeps the defaults")
}

func TestSeed_KeepsExistingFile(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: memory\n")

	require.NoError(t, Seed(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "store:\n  driver: memory\n", string(data))
}
