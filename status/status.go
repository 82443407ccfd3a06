// Package status formats the one-line messages shown in the status bar.
package status

import "strings"

const (
	SuccessSymbol  = "✓"
	ErrorSymbol    = "✗"
	ProgressSymbol = "⟳"
	InfoSymbol     = "ℹ"
)

func Success(msg string) string {
	return SuccessSymbol + " " + msg
}

func Error(msg string) string {
	return ErrorSymbol + " " + msg
}

// Progress appends an ellipsis unless msg already ends with one.
func Progress(msg string) string {
	msg = strings.TrimRight(msg, ".…")
	return ProgressSymbol + " " + msg + "..."
}

func Info(msg string) string {
	return InfoSymbol + " " + msg
}

// HasSymbol reports whether msg already starts with one of the status symbols.
func HasSymbol(msg string) bool {
	for _, sym := range []string{SuccessSymbol, ErrorSymbol, ProgressSymbol, InfoSymbol} {
		if strings.HasPrefix(msg, sym) {
			return true
		}
	}
	return false
}
