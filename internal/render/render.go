// Package render prints a schedule as plain-text tables, one per round.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/derekprior/roundrobin/internal/fixture"
)

// Line is the display form of a single match. Bye matches collapse into a
// resting entry with Guest left empty.
type Line struct {
	Home    string
	Guest   string
	Resting bool
}

func (l Line) String() string {
	if l.Resting {
		return l.Home + " rests"
	}
	return l.Home + " Vs. " + l.Guest
}

// Lines converts a round's matches into display lines. Resting entries sort
// after the matches so every round reads the same way.
func Lines(r fixture.Round) []Line {
	var lines []Line
	var rest *Line
	for _, m := range r.Matches {
		if team, ok := m.Resting(); ok {
			rest = &Line{Home: team.Name, Resting: true}
			continue
		}
		lines = append(lines, Line{Home: m.Home.Name(), Guest: m.Guest.Name()})
	}
	if rest != nil {
		lines = append(lines, *rest)
	}
	return lines
}

// Text writes the whole schedule to w.
func Text(w io.Writer, s *fixture.Schedule) error {
	underline := strings.Repeat("=", len([]rune(s.LeagueName)))
	if _, err := fmt.Fprintf(w, "%s\n%s\n", s.LeagueName, underline); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	for _, r := range s.Rounds() {
		if _, err := fmt.Fprintf(w, "\nRound %d\n", r.Number); err != nil {
			return fmt.Errorf("writing round %d: %w", r.Number, err)
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Home\t\tGuest")
		for _, l := range Lines(r) {
			if l.Resting {
				fmt.Fprintf(tw, "  %s\t\t(rests)\n", l.Home)
				continue
			}
			fmt.Fprintf(tw, "  %s\tvs\t%s\n", l.Home, l.Guest)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing round %d: %w", r.Number, err)
		}
	}
	return nil
}
