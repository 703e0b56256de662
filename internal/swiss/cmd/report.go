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
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

func Report() *cobra.Command {
	return &cobra.Command{
		Use:   "report winner loser",
		Short: "Record the result of a match",
		Args:  cobra.ExactArgs(2),
		Long: heredoc.Doc(`report records that the player with id winner beat the
			player with id loser. Both players must be registered and
			must be different. Draws are not supported.

			Matches between the same two players can be reported
			more than once, each report counts as a separate match.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			winner, err := parseID(args[0])
			if err != nil {
				return err
			}

			loser, err := parseID(args[1])
			if err != nil {
				return err
			}

			var outcome tournament.Outcome
			err = withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) (err error) {
				outcome, err = tour.RecordOutcome(ctx, winner, loser)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded match %s: %d beat %d\n",
				outcome.ID, outcome.Winner, outcome.Loser)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: player id %q is not a number", tournament.ErrInvalidInput, arg)
	}

	return id, nil
}
