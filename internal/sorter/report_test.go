package sorter

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderCapsUnmatchedPreview(t *testing.T) {
	report := newReport("test-run", false)
	report.TotalFiles = 15
	for i := 0; i < 15; i++ {
		report.Unmatched = append(report.Unmatched, fmt.Sprintf("file-%02d.mp3", i))
	}

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, "file-09.mp3") {
		t.Errorf("tenth unmatched file missing from preview:\n%s", out)
	}
	if strings.Contains(out, "file-10.mp3") {
		t.Errorf("preview should stop at %d entries:\n%s", unmatchedPreviewLimit, out)
	}
	if !strings.Contains(out, "... and 5 more") {
		t.Errorf("remainder line missing:\n%s", out)
	}
}

func TestRenderDryRunOmitsMoveCounts(t *testing.T) {
	report := newReport("test-run", true)
	report.TotalFiles = 2
	report.Matched = 2
	report.YearCounts[2020] = 2

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, "[dry run]") {
		t.Errorf("dry-run marker missing:\n%s", out)
	}
	if strings.Contains(out, "Completed:") {
		t.Errorf("dry run must not report move counts:\n%s", out)
	}
	if !strings.Contains(out, "2020") {
		t.Errorf("per-year table missing:\n%s", out)
	}
}

func TestRenderRealRunCounts(t *testing.T) {
	report := newReport("test-run", false)
	report.TotalFiles = 3
	report.Matched = 3
	report.Moved = 2
	report.Skipped = 1

	var buf bytes.Buffer
	report.Render(&buf)

	if !strings.Contains(buf.String(), "Completed: 2 moved, 1 skipped, 0 errors") {
		t.Errorf("completion line wrong:\n%s", buf.String())
	}
}
