package validator

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
)

// Violation represents a problem found in an exported schedule.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks that its Fixtures sheet is
// still a single round-robin over the configured teams.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rows, err := excel.ReadFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return Check(cfg, rows), nil
}

// Check runs every rule against already parsed fixture rows.
func Check(cfg *config.Config, rows []excel.Row) []Violation {
	var violations []Violation

	violations = append(violations, checkKnownTeams(cfg, rows)...)
	violations = append(violations, checkSelfPlay(rows)...)
	violations = append(violations, checkRoundParticipation(cfg, rows)...)
	violations = append(violations, checkPairings(cfg, rows)...)
	violations = append(violations, checkRestBalance(cfg, rows)...)

	return violations
}

func checkKnownTeams(cfg *config.Config, rows []excel.Row) []Violation {
	known := make(map[string]bool)
	for _, name := range cfg.TeamNames() {
		known[name] = true
	}

	var violations []Violation
	for _, r := range rows {
		for _, name := range []string{r.Home, r.Guest, r.Resting} {
			if name != "" && !known[name] {
				violations = append(violations, Violation{
					Row:     r.Line,
					Type:    "error",
					Message: fmt.Sprintf("round %d: unknown team %q", r.Round, name),
				})
			}
		}
		if r.Resting == "" && (r.Home == "") != (r.Guest == "") {
			violations = append(violations, Violation{
				Row:     r.Line,
				Type:    "error",
				Message: fmt.Sprintf("round %d: match has only one team", r.Round),
			})
		}
	}
	return violations
}

func checkSelfPlay(rows []excel.Row) []Violation {
	var violations []Violation
	for _, r := range rows {
		if r.Home != "" && r.Home == r.Guest {
			violations = append(violations, Violation{
				Row:     r.Line,
				Type:    "error",
				Message: fmt.Sprintf("round %d: %s plays itself", r.Round, r.Home),
			})
		}
	}
	return violations
}

// checkRoundParticipation makes sure every team shows up exactly once in
// every round, and that at most one team rests per round.
func checkRoundParticipation(cfg *config.Config, rows []excel.Row) []Violation {
	type teamRound struct {
		team  string
		round int
	}
	appearances := make(map[teamRound][]int)
	rests := make(map[int][]string)
	rounds := make(map[int]bool)

	for _, r := range rows {
		rounds[r.Round] = true
		for _, name := range []string{r.Home, r.Guest, r.Resting} {
			if name != "" {
				appearances[teamRound{name, r.Round}] = append(appearances[teamRound{name, r.Round}], r.Line)
			}
		}
		if r.Resting != "" {
			rests[r.Round] = append(rests[r.Round], r.Resting)
		}
	}

	var violations []Violation
	for _, round := range sortedRounds(rounds) {
		for _, team := range cfg.TeamNames() {
			lines := appearances[teamRound{team, round}]
			switch {
			case len(lines) == 0:
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("round %d: %s neither plays nor rests", round, team),
				})
			case len(lines) > 1:
				violations = append(violations, Violation{
					Row:     lines[1],
					Type:    "error",
					Message: fmt.Sprintf("round %d: %s appears %d times", round, team, len(lines)),
				})
			}
		}
		if len(rests[round]) > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("round %d: %d teams rest (%v), at most 1 allowed", round, len(rests[round]), rests[round]),
			})
		}
	}
	return violations
}

func checkPairings(cfg *config.Config, rows []excel.Row) []Violation {
	type pair struct{ a, b string }
	normalize := func(a, b string) pair {
		if a > b {
			a, b = b, a
		}
		return pair{a, b}
	}

	played := make(map[pair][]excel.Row)
	for _, r := range rows {
		if r.Home == "" || r.Guest == "" || r.Home == r.Guest {
			continue
		}
		p := normalize(r.Home, r.Guest)
		played[p] = append(played[p], r)
	}

	var violations []Violation
	teams := cfg.TeamNames()
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			p := normalize(teams[i], teams[j])
			games := played[p]
			switch {
			case len(games) == 0:
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s and %s never play", p.a, p.b),
				})
			case len(games) > 1:
				violations = append(violations, Violation{
					Row:  games[1].Line,
					Type: "error",
					Message: fmt.Sprintf("%s and %s play %d times (rounds %d and %d)",
						p.a, p.b, len(games), games[0].Round, games[1].Round),
				})
			}
		}
	}
	return violations
}

// checkRestBalance warns when the bye did not go round evenly. In a valid
// schedule with an odd roster every team rests exactly once.
func checkRestBalance(cfg *config.Config, rows []excel.Row) []Violation {
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Resting != "" {
			counts[r.Resting]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var violations []Violation
	for _, team := range cfg.TeamNames() {
		if counts[team] != 1 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s rests %d times (expected 1)", team, counts[team]),
			})
		}
	}
	return violations
}

func sortedRounds(rounds map[int]bool) []int {
	out := make([]int, 0, len(rounds))
	for r := range rounds {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}
