package export

import (
	"fmt"
	"strings"
)

// maxReportedErrors caps the number of error lines in the summary; the
// remainder is summarized by count.
const maxReportedErrors = 10

// Stats is the run report: counters mutated throughout a run and rendered
// once at the end. It is threaded through the pipeline explicitly rather
// than held as global state, so components test in isolation.
type Stats struct {
	TotalItems           int
	PasswordItems        int
	NonPasswordItems     int
	SkippedItems         int
	AttachmentsExtracted int
	Errors               []string
}

// AddError records a non-fatal error. The run continues.
func (s *Stats) AddError(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Summary renders the final report block.
func (s *Stats) Summary(csvPath, nonPasswordDir string) string {
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("EXPORT SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total items in .1pux file: %d\n", s.TotalItems)
	fmt.Fprintf(&b, "Password items exported (CSV): %d\n", s.PasswordItems)
	fmt.Fprintf(&b, "Non-password items exported (text files): %d\n", s.NonPasswordItems)
	fmt.Fprintf(&b, "Items skipped (category 005 - unused passwords): %d\n", s.SkippedItems)
	fmt.Fprintf(&b, "Attachments extracted: %d\n", s.AttachmentsExtracted)

	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors encountered: %d\n", len(s.Errors))
		for i, msg := range s.Errors {
			if i == maxReportedErrors {
				fmt.Fprintf(&b, "  ... and %d more\n", len(s.Errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	b.WriteString("\nOutput locations:\n")
	fmt.Fprintf(&b, "  Passwords CSV: %s\n", csvPath)
	fmt.Fprintf(&b, "  Non-password data: %s\n", nonPasswordDir)
	b.WriteString("    (Each item stored in its own folder with attachments)\n")
	b.WriteString(rule)
	return b.String()
}
