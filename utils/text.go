package utils

// Truncate shortens s to max runes, appending an ellipsis when text
// was cut off.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
