package report

import "strings"

// PadLeadingZeros left-pads each value with '0' to reach width characters.
// Values already at or beyond width pass through unchanged; over-length
// input is a data-quality problem for the extract, never truncated here.
func PadLeadingZeros(values []string, width int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = PadLeadingZerosValue(v, width)
	}
	return out
}

func PadLeadingZerosValue(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}

// FormatName converts "Last, First" to "First Last". Inputs that do not
// split into exactly two comma-separated parts pass through unchanged, and
// a null input stays null.
func FormatName(full *string) *string {
	if full == nil {
		return nil
	}
	parts := strings.Split(*full, ",")
	if len(parts) != 2 {
		return full
	}
	first := strings.TrimSpace(parts[1])
	last := strings.TrimSpace(parts[0])
	return Ptr(first + " " + last)
}
