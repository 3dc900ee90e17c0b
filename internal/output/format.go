package output

import "github.com/mattn/go-isatty"

// Formats accepted by --format.
const (
	FormatAuto   = "auto"
	FormatTable  = "table"
	FormatNDJSON = "ndjson"
)

// ResolveFormat maps "auto" to a concrete format: table on a terminal,
// ndjson when output is piped.
func ResolveFormat(format string, fd uintptr) string {
	if format != "" && format != FormatAuto {
		return format
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatNDJSON
}
