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

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/config"
	"laptudirm.com/x/swiss/pkg/store/memory"
	"laptudirm.com/x/swiss/pkg/store/sqlite"
)

func TestOpen_Memory(t *testing.T) {
	options := config.Default().Store
	options.Driver = config.DriverMemory

	s, err := Open(context.Background(), options)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memory.Store{}, s)
}

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "swiss", "tournament.db")

	options := config.Default().Store
	options.SQLite.Path = path

	s, err := Open(context.Background(), options)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &sqlite.Store{}, s)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	options := config.Default().Store
	options.Driver = "mongo"

	s, err := Open(context.Background(), options)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestOpen_UnreachableRedis(t *testing.T) {
	options := config.Default().Store
	options.Driver = config.DriverRedis
	options.Redis.Addr = "127.0.0.1:1"

	s, err := Open(context.Background(), options)
	assert.Error(t, err)
	assert.Nil(t, s)
}
