package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/fixture"
	"github.com/derekprior/roundrobin/internal/render"
)

// Page layout. Each round is a block one column wide: a "Round N" header
// followed by its match lines. Blocks fill Columns across, with a narrow
// spacer column between them and a blank row between bands.
const (
	titleRow   = 1
	firstBlock = 3
	blockWidth = 32
	spacer     = 2
)

// PageName returns the sheet name of the n-th printable page (1-based).
func PageName(n int) string {
	return fmt.Sprintf("Page %d", n)
}

// PageCount returns how many pages the schedule needs at the configured
// rounds per page.
func PageCount(cfg *config.Config, s *fixture.Schedule) int {
	rounds := len(s.Rounds())
	per := cfg.Export.RoundsPerPage
	return (rounds + per - 1) / per
}

func writePages(f *excelize.File, cfg *config.Config, s *fixture.Schedule) error {
	rounds := s.Rounds()
	per := cfg.Export.RoundsPerPage
	cols := cfg.Export.Columns

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 28, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	roundStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F98080"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	matchStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFFF00"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// Every round has the same number of matches; a bye match still takes
	// one line as the resting entry.
	blockHeight := 1
	if len(rounds) > 0 {
		blockHeight += len(rounds[0].Matches)
	}

	// The first page takes over the workbook's default sheet so no team
	// sheet can land on it.
	if err := f.SetSheetName(f.GetSheetName(0), PageName(1)); err != nil {
		return err
	}

	for page := 0; page*per < len(rounds); page++ {
		sheet := PageName(page + 1)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		lastCol := (cols-1)*2 + 1
		f.SetCellValue(sheet, cellRef(1, titleRow), s.LeagueName)
		if lastCol > 1 {
			f.MergeCell(sheet, cellRef(1, titleRow), cellRef(lastCol, titleRow))
		}
		f.SetRowHeight(sheet, titleRow, 40)
		if titleStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, titleRow), cellRef(lastCol, titleRow), titleStyle)
		}

		end := min((page+1)*per, len(rounds))
		for i, r := range rounds[page*per : end] {
			col := (i%cols)*2 + 1
			top := firstBlock + (i/cols)*(blockHeight+1)

			f.SetCellValue(sheet, cellRef(col, top), fmt.Sprintf("Round %d", r.Number))
			if roundStyle != 0 {
				f.SetCellStyle(sheet, cellRef(col, top), cellRef(col, top), roundStyle)
			}
			for j, l := range render.Lines(r) {
				ref := cellRef(col, top+1+j)
				f.SetCellValue(sheet, ref, l.String())
				if matchStyle != 0 {
					f.SetCellStyle(sheet, ref, ref, matchStyle)
				}
			}
		}

		for c := 1; c <= lastCol; c++ {
			width := float64(blockWidth)
			if c%2 == 0 {
				width = spacer
			}
			f.SetColWidth(sheet, colLetter(c), colLetter(c), width)
		}
		f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
			Orientation: ptr("portrait"),
			FitToWidth:  ptr(1),
		})
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
