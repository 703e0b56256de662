// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package tournament

import (
	"fmt"
	"io"
	"strings"

	"laptudirm.com/x/swiss/pkg/stats"
)

// width of a report row between the box edges
const reportWidth = 60

// width of the name column, longer names are cut short
const nameWidth = 15

// Report writes the standings as a boxed table, in the order given.
func Report(w io.Writer, standings []Standing) {
	border := strings.Repeat("═", reportWidth)

	fmt.Fprintf(w, "╔%s╗\n", border)
	fmt.Fprintf(w,
		"║ %2s  %3s  %-15s   %4s %4s   %4s %4s   %7s ║\n",
		"", "ID", "Name", "Elo", "+-", "Wins", "Loss", "Matches",
	)
	fmt.Fprintf(w, "╠%s╣\n", border)
	for i, standing := range standings {
		elo, err := stats.Performance(standing.Wins, standing.Losses())

		fmt.Fprintf(w,
			"║ %2d. %3d  %-15s   %+4.0f %4.0f   %4d %4d   %7d ║\n",
			i+1, standing.ID, truncate(standing.Name, nameWidth),
			elo, err,
			standing.Wins, standing.Losses(), standing.Matches,
		)
	}
	fmt.Fprintf(w, "╚%s╝\n", border)
}

// PairingsReport writes one line per board for the given pairings.
func PairingsReport(w io.Writer, pairings []Pairing) {
	for board, pairing := range pairings {
		fmt.Fprintf(w, "Board %d: %s\n", board+1, pairing)
	}
}

// truncate shortens name to at most width runes, marking the cut with an
// ellipsis.
func truncate(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}

	return string(runes[:width-1]) + "…"
}
