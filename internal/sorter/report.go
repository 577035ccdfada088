package sorter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// unmatchedPreviewLimit caps how many unmatched filenames the rendered report
// lists; the full count is always shown.
const unmatchedPreviewLimit = 10

// Report aggregates the outcome of one organize run. It is derived purely
// from in-memory results and has no side effects of its own.
type Report struct {
	RunID      string
	DryRun     bool
	TotalFiles int
	Matched    int
	Unmatched  []string
	YearCounts map[int]int
	Moved      int
	Skipped    int
	Errors     int
}

func newReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:      runID,
		DryRun:     dryRun,
		YearCounts: map[int]int{},
	}
}

// UnmatchedCount returns the number of files no episode matched.
func (r *Report) UnmatchedCount() int { return len(r.Unmatched) }

// Render writes the human-readable run summary. A terminal gets a rounded
// table; redirected output gets plain table borders.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Run %s\n", r.RunID)
	fmt.Fprintf(w, "Total files to organize: %d\n", r.TotalFiles)
	fmt.Fprintf(w, "Matched files: %d\n", r.Matched)
	fmt.Fprintf(w, "Unmatched files: %d\n", r.UnmatchedCount())

	if len(r.YearCounts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.renderYearTable(w))
	}

	if len(r.Unmatched) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unmatched files (will not be moved):")
		preview := r.Unmatched
		if len(preview) > unmatchedPreviewLimit {
			preview = preview[:unmatchedPreviewLimit]
		}
		for _, name := range preview {
			fmt.Fprintf(w, "  - %s\n", name)
		}
		if remainder := len(r.Unmatched) - len(preview); remainder > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", remainder)
		}
	}

	fmt.Fprintln(w)
	if r.DryRun {
		fmt.Fprintln(w, "[dry run] No files were moved.")
		return
	}
	fmt.Fprintf(w, "Completed: %d moved, %d skipped, %d errors\n", r.Moved, r.Skipped, r.Errors)
}

func (r *Report) renderYearTable(w io.Writer) string {
	years := make([]int, 0, len(r.YearCounts))
	for year := range r.YearCounts {
		years = append(years, year)
	}
	sort.Ints(years)

	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.AppendHeader(table.Row{"Year", "Files"})
	for _, year := range years {
		tw.AppendRow(table.Row{strconv.Itoa(year), r.YearCounts[year]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
