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

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/tournament"
)

// swiss runs the command line against a fresh sqlite database in dir.
type swiss struct {
	t   *testing.T
	dir string
}

func newSwiss(t *testing.T) *swiss {
	t.Helper()

	for _, key := range []string{"SWISS_STORE", "SWISS_LOG_LEVEL", "SWISS_SCHEDULER", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	level := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(level) })

	return &swiss{t: t, dir: t.TempDir()}
}

func (s *swiss) run(args ...string) (string, error) {
	s.t.Helper()

	root := Root()
	root.SetArgs(append(args,
		"--store", "sqlite",
		"--dsn", filepath.Join(s.dir, "tournament.db"),
		"--config", filepath.Join(s.dir, "config.yaml"),
	))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

func (s *swiss) mustRun(args ...string) string {
	s.t.Helper()

	out, err := s.run(args...)
	require.NoError(s.t, err, "swiss %s", strings.Join(args, " "))
	return out
}

func TestRootCommands(t *testing.T) {
	root := Root()

	for _, name := range []string{"register", "count", "report", "standings", "pairings", "delete"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"help", "version", "trace", "debug", "config", "store", "dsn"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestTournamentRound(t *testing.T) {
	s := newSwiss(t)

	for _, name := range []string{"A", "B", "C", "D"} {
		s.mustRun("register", name)
	}
	assert.Equal(t, "4\n", s.mustRun("count"))

	out := s.mustRun("report", "1", "2")
	assert.Contains(t, out, "1 beat 2")
	s.mustRun("report", "3", "4")

	standings := s.mustRun("standings")
	assert.Contains(t, standings, " 1.   2  B")
	assert.Contains(t, standings, " 4.   3  C")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pairings", []byte(s.mustRun("pairings")))
}

func TestRegisterSanitizesName(t *testing.T) {
	s := newSwiss(t)

	out := s.mustRun("register", "<b>Judit</b>", "Polgar")
	assert.Equal(t, "Registered player Judit Polgar (1)\n", out)
}

func TestInvalidRequests(t *testing.T) {
	s := newSwiss(t)
	s.mustRun("register", "A")
	s.mustRun("register", "B")
	s.mustRun("register", "C")

	tests := []struct {
		name string
		args []string
	}{
		{"empty name", []string{"register", "<i></i>"}},
		{"same player", []string{"report", "1", "1"}},
		{"unknown player", []string{"report", "1", "9"}},
		{"bad id", []string{"report", "one", "2"}},
		{"odd pairings", []string{"pairings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.run(tt.args...)
			assert.ErrorIs(t, err, tournament.ErrInvalidInput)
		})
	}
}

func TestDelete(t *testing.T) {
	s := newSwiss(t)
	s.mustRun("register", "A")
	s.mustRun("register", "B")
	s.mustRun("report", "1", "2")

	assert.Equal(t, "Deleted all matches\n", s.mustRun("delete", "matches"))
	assert.Equal(t, "2\n", s.mustRun("count"))
	assert.Contains(t, s.mustRun("standings"), "   0    0         0 ║")

	assert.Equal(t, "Deleted all players\n", s.mustRun("delete", "players"))
	assert.Equal(t, "0\n", s.mustRun("count"))

	assert.Equal(t, "Registered player C (3)\n", s.mustRun("register", "C"))
}

func TestUnknownStore(t *testing.T) {
	s := newSwiss(t)

	root := Root()
	root.SetArgs([]string{"count", "--store", "mongo", "--config", filepath.Join(s.dir, "config.yaml")})
	root.SetOut(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestFlagsCompleteEnvironment(t *testing.T) {
	s := newSwiss(t)
	t.Setenv("SWISS_STORE", "postgres")

	root := Root()
	root.SetArgs([]string{
		"count",
		"--dsn", "postgres://127.0.0.1:1/swiss?connect_timeout=1",
		"--config", filepath.Join(s.dir, "config.yaml"),
	})
	root.SetOut(&bytes.Buffer{})

	// The dsn from the flag passes validation, so the failure comes from
	// connecting to the unreachable server.
	err := root.Execute()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "dsn is empty")
	assert.Contains(t, err.Error(), "open postgres store")
}
