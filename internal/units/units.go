// Package units formats counts and byte sizes for human-readable reports.
package units

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators, e.g. 1234567 -> "1,234,567".
func Count[N ~int | ~int32 | ~int64 | ~uint32 | ~uint64](n N) string {
	return printer.Sprintf("%d", n)
}

// Rate formats a per-second rate with thousands separators and no decimals.
func Rate(perSecond float64) string {
	return printer.Sprintf("%.0f/s", perSecond)
}

// Bytes formats n using binary units, e.g. 1536 -> "1.5 KiB".
func Bytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
