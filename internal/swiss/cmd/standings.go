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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

func Standings() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the players ordered by their number of wins",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			var standings []tournament.Standing
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) (err error) {
				standings, err = tour.Standings(ctx)
				return err
			})
			if err != nil {
				return err
			}

			tournament.Report(cmd.OutOrStdout(), standings)
			return nil
		},
	}
}

func Pairings() *cobra.Command {
	return &cobra.Command{
		Use:   "pairings",
		Short: "Show the pairings for the next round",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`pairings pairs up the players for the next round of the
			tournament. The players are ordered by their standings
			and each player is paired with their neighbour, so that
			players with similar records play each other.

			The number of registered players must be even.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var pairings []tournament.Pairing
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) (err error) {
				pairings, err = tour.Pairings(ctx)
				return err
			})
			if err != nil {
				return err
			}

			tournament.PairingsReport(cmd.OutOrStdout(), pairings)
			return nil
		},
	}
}
