package types

// MaxDescriptionRunes caps free-text descriptions before they are stored.
const MaxDescriptionRunes = 500

// TruncateRunes trims s to at most n runes, preserving multi-byte
// characters at the cut point.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
