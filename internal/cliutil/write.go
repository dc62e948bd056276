// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// countPrinter formats counts with English digit grouping.
var countPrinter = message.NewPrinter(language.English)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatCount formats n with thousands separators (e.g. 1234567 -> "1,234,567").
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// WriteSizeStats writes the before/after size comparison block:
//
//	--- Stats ---
//	Before (pretty chars): 12,345
//	After  (pretty chars): 2,345
//	Delta               : 10,000 (81.0%)
func WriteSizeStats(w io.Writer, before, after int) {
	delta := before - after
	Writef(w, "\n--- Stats ---\n")
	Writef(w, "Before (pretty chars): %s\n", FormatCount(before))
	Writef(w, "After  (pretty chars): %s\n", FormatCount(after))
	if before > 0 {
		Writef(w, "Delta               : %s (%.1f%%)\n", FormatCount(delta), float64(delta)*100/float64(before))
		return
	}
	Writef(w, "Delta               : %s\n", FormatCount(delta))
}
