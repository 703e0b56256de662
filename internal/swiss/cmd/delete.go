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
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

func Delete() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete { matches players }",
		Short: "Delete the recorded matches or the registered players",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`delete clears the tournament's records.

			delete matches removes every reported match but keeps the
			registered players. delete players removes every player
			along with all of their matches. Player ids are not reused
			after players are deleted.`),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "matches",
		Short: "Delete every recorded match",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) error {
				return tour.DeleteMatches(ctx)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted all matches")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "players",
		Short: "Delete every registered player and their matches",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) error {
				return tour.DeletePlayers(ctx)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted all players")
			return nil
		},
	})

	return cmd
}
