package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/fixture"
)

func testConfig(names ...string) *config.Config {
	cfg := &config.Config{
		League: "Liga Local",
		Export: config.Export{RoundsPerPage: 9, Columns: 3},
	}
	for _, n := range names {
		cfg.Teams = append(cfg.Teams, config.Team{ID: n, Name: n})
	}
	return cfg
}

func writeSchedule(t *testing.T, cfg *config.Config) string {
	t.Helper()
	s, err := fixture.Generate(cfg.League, cfg.FixtureTeams(), fixture.WithSeed(17))
	require.NoError(t, err)
	f, err := excel.Generate(cfg, s)
	require.NoError(t, err)
	path := t.TempDir() + "/schedule.xlsx"
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestValidateGeneratedSchedule(t *testing.T) {
	for _, names := range [][]string{
		{"Atlas", "America", "Barcelona", "Juventus"},
		{"Atlas", "America", "Barcelona", "Juventus", "Chivas"},
	} {
		cfg := testConfig(names...)
		path := writeSchedule(t, cfg)

		violations, err := Validate(cfg, path)
		require.NoError(t, err)
		assert.Empty(t, violations, "%d teams", len(names))
	}
}

func TestValidateMissingFile(t *testing.T) {
	_, err := Validate(testConfig("A", "B"), t.TempDir()+"/missing.xlsx")
	assert.Error(t, err)
}

// rows builds a valid 4-team schedule: A, B, C, D.
func validRows() []excel.Row {
	return []excel.Row{
		{Line: 2, Round: 1, Home: "A", Guest: "D"},
		{Line: 3, Round: 1, Home: "B", Guest: "C"},
		{Line: 4, Round: 2, Home: "A", Guest: "C"},
		{Line: 5, Round: 2, Home: "D", Guest: "B"},
		{Line: 6, Round: 3, Home: "B", Guest: "A"},
		{Line: 7, Round: 3, Home: "C", Guest: "D"},
	}
}

func messages(vs []Violation, typ string) []string {
	var out []string
	for _, v := range vs {
		if v.Type == typ {
			out = append(out, v.Message)
		}
	}
	return out
}

func containsMessage(msgs []string, sub string) bool {
	for _, m := range msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

func TestCheck(t *testing.T) {
	cfg := testConfig("A", "B", "C", "D")

	t.Run("valid schedule", func(t *testing.T) {
		assert.Empty(t, Check(cfg, validRows()))
	})

	tests := []struct {
		name string
		edit func([]excel.Row) []excel.Row
		want string
	}{
		{
			name: "unknown team",
			edit: func(rows []excel.Row) []excel.Row {
				rows[0].Guest = "Z"
				return rows
			},
			want: `unknown team "Z"`,
		},
		{
			name: "self play",
			edit: func(rows []excel.Row) []excel.Row {
				rows[0].Guest = "A"
				return rows
			},
			want: "A plays itself",
		},
		{
			name: "repeated pairing",
			edit: func(rows []excel.Row) []excel.Row {
				rows[2].Guest, rows[3].Guest = "D", "C"
				return rows
			},
			want: "A and D play 2 times",
		},
		{
			name: "missing pairing",
			edit: func(rows []excel.Row) []excel.Row {
				return rows[:5]
			},
			want: "C and D never play",
		},
		{
			name: "team twice in a round",
			edit: func(rows []excel.Row) []excel.Row {
				rows[1].Guest = "D"
				return rows
			},
			want: "round 1: D appears 2 times",
		},
		{
			name: "team absent from a round",
			edit: func(rows []excel.Row) []excel.Row {
				rows[1].Guest = "D"
				return rows
			},
			want: "round 1: C neither plays nor rests",
		},
		{
			name: "one-sided match",
			edit: func(rows []excel.Row) []excel.Row {
				rows[0].Guest = ""
				return rows
			},
			want: "only one team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := messages(Check(cfg, tt.edit(validRows())), "error")
			assert.True(t, containsMessage(errs, tt.want), "errors %v do not mention %q", errs, tt.want)
		})
	}
}

func TestCheckRests(t *testing.T) {
	cfg := testConfig("A", "B", "C")
	valid := []excel.Row{
		{Line: 2, Round: 1, Home: "A", Guest: "B"},
		{Line: 3, Round: 1, Resting: "C"},
		{Line: 4, Round: 2, Home: "C", Guest: "A"},
		{Line: 5, Round: 2, Resting: "B"},
		{Line: 6, Round: 3, Home: "B", Guest: "C"},
		{Line: 7, Round: 3, Resting: "A"},
	}

	t.Run("each team rests once", func(t *testing.T) {
		assert.Empty(t, Check(cfg, valid))
	})

	t.Run("two teams resting in one round", func(t *testing.T) {
		rows := append([]excel.Row(nil), valid...)
		rows[0] = excel.Row{Line: 2, Round: 1, Resting: "A"}
		rows = append(rows, excel.Row{Line: 8, Round: 1, Resting: "B"})
		vs := Check(cfg, rows)
		errs, warnings := messages(vs, "error"), messages(vs, "warning")
		assert.True(t, containsMessage(errs, "round 1: 3 teams rest"), "errors %v do not report the extra rests", errs)
		assert.True(t, containsMessage(warnings, "A rests 2 times"), "warnings %v do not report uneven rests", warnings)
	})
}
