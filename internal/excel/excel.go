package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/fixture"
	"github.com/derekprior/roundrobin/internal/render"
)

// FixturesSheet holds one data row per match and is what the validator and
// UpdateTeamSheets read back.
const FixturesSheet = "Fixtures"

var fixtureHeaders = []string{"Round", "Home", "Guest", "Resting"}

// Row is one line of the Fixtures sheet. A bye match has only Resting set.
type Row struct {
	Line    int
	Round   int
	Home    string
	Guest   string
	Resting string
}

// Generate creates a workbook with printable pages of rounds, the flat
// Fixtures sheet and one sheet per team.
func Generate(cfg *config.Config, s *fixture.Schedule) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writePages(f, cfg, s); err != nil {
		return nil, fmt.Errorf("writing pages: %w", err)
	}

	rows := rowsFromSchedule(s)
	if err := writeFixturesSheet(f, rows); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}

	if err := writeTeamSheets(f, cfg.TeamNames(), rows); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	return f, nil
}

// UpdateTeamSheets rebuilds the per-team sheets of a saved workbook from
// its Fixtures sheet, so manual edits to the fixtures carry through.
func UpdateTeamSheets(path string, cfg *config.Config) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rows, err := ReadFixtures(f)
	if err != nil {
		return err
	}

	names := cfg.TeamNames()
	for _, sheet := range teamSheetNames(names) {
		if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
			if err := f.DeleteSheet(sheet); err != nil {
				return fmt.Errorf("removing sheet %q: %w", sheet, err)
			}
		}
	}
	if err := writeTeamSheets(f, names, rows); err != nil {
		return fmt.Errorf("writing team sheets: %w", err)
	}
	return f.Save()
}

// ReadFixtures parses the Fixtures sheet. Rows without a round number are
// skipped.
func ReadFixtures(f *excelize.File) ([]Row, error) {
	data, err := f.GetRows(FixturesSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FixturesSheet, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s sheet is empty", FixturesSheet)
	}

	var rows []Row
	for i, cells := range data[1:] {
		cell := func(col int) string {
			if col < len(cells) {
				return strings.TrimSpace(cells[col])
			}
			return ""
		}
		if cell(0) == "" {
			continue
		}
		round, err := strconv.Atoi(cell(0))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid round %q", FixturesSheet, i+2, cell(0))
		}
		rows = append(rows, Row{
			Line:    i + 2,
			Round:   round,
			Home:    cell(1),
			Guest:   cell(2),
			Resting: cell(3),
		})
	}
	return rows, nil
}

func rowsFromSchedule(s *fixture.Schedule) []Row {
	var rows []Row
	for _, r := range s.Rounds() {
		for _, l := range render.Lines(r) {
			row := Row{Line: len(rows) + 2, Round: r.Number}
			if l.Resting {
				row.Resting = l.Home
			} else {
				row.Home, row.Guest = l.Home, l.Guest
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	style := headerStyle(f)
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func writeFixturesSheet(f *excelize.File, rows []Row) error {
	if _, err := f.NewSheet(FixturesSheet); err != nil {
		return err
	}
	writeHeaders(f, FixturesSheet, fixtureHeaders)

	for i, r := range rows {
		line := i + 2
		f.SetCellValue(FixturesSheet, cellRef(1, line), r.Round)
		f.SetCellValue(FixturesSheet, cellRef(2, line), r.Home)
		f.SetCellValue(FixturesSheet, cellRef(3, line), r.Guest)
		f.SetCellValue(FixturesSheet, cellRef(4, line), r.Resting)
	}

	f.SetColWidth(FixturesSheet, "A", "A", 8)
	f.SetColWidth(FixturesSheet, "B", "D", 24)
	return nil
}

func writeTeamSheets(f *excelize.File, teams []string, rows []Row) error {
	sheets := teamSheetNames(teams)
	for _, team := range teams {
		if team == "" {
			continue
		}
		sheet := sheets[team]
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet for %s: %w", team, err)
		}
		writeHeaders(f, sheet, []string{"Round", "Opponent", "Home/Guest"})

		line := 2
		for _, r := range rows {
			var opponent, side string
			switch team {
			case r.Home:
				opponent, side = r.Guest, "Home"
			case r.Guest:
				opponent, side = r.Home, "Guest"
			case r.Resting:
				side = "Rest"
			default:
				continue
			}
			f.SetCellValue(sheet, cellRef(1, line), r.Round)
			f.SetCellValue(sheet, cellRef(2, line), opponent)
			f.SetCellValue(sheet, cellRef(3, line), side)
			line++
		}

		f.SetColWidth(sheet, "A", "A", 8)
		f.SetColWidth(sheet, "B", "B", 24)
		f.SetColWidth(sheet, "C", "C", 12)
	}
	return nil
}

// teamSheetNames maps team names to sheet names Excel accepts: at most 31
// characters, none of :\/?*[], and not clashing with the other sheets.
func teamSheetNames(teams []string) map[string]string {
	replacer := strings.NewReplacer(":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")
	used := map[string]bool{strings.ToLower(FixturesSheet): true}
	out := make(map[string]string, len(teams))
	for _, team := range teams {
		base := strings.Trim(replacer.Replace(team), "'")
		if base == "" {
			base = "Team"
		}
		if strings.HasPrefix(strings.ToLower(base), "page ") {
			base = "Team " + base
		}
		name := truncate(base, 31)
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" %d", n)
			name = truncate(base, 31-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		out[team] = name
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func cellRef(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	return ref
}

func colLetter(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
