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

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/store/storetest"
	"laptudirm.com/x/swiss/pkg/tournament"
)

// The tests share one database, so they empty it before every test and
// must not run in parallel.
func testDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("SWISS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping test because SWISS_TEST_POSTGRES_DSN is not set")
	}

	return dsn
}

func createTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, testDSN(t))
	require.NoError(t, err)
	require.NoError(t, s.DeletePlayers(ctx))

	return s
}

func TestStore(t *testing.T) {
	testDSN(t)

	storetest.Run(t, func(t *testing.T) tournament.Store {
		return createTestStore(t)
	})
}

func TestOpen_BadDSN(t *testing.T) {
	_, err := Open(context.Background(), "not a dsn ::")
	assert.Error(t, err)
}

func TestOpen_Idempotent(t *testing.T) {
	dsn := testDSN(t)

	for i := 0; i < 2; i++ {
		s, err := Open(context.Background(), dsn)
		require.NoError(t, err, "Open() iteration %d", i)
		s.Close()
	}
}
