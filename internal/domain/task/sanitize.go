package task

import (
	"html"
	"strings"
)

// ContainsNullByte reports whether text embeds a NUL character. Titles
// and descriptions with NUL bytes are rejected at creation time.
func ContainsNullByte(text string) bool {
	return strings.ContainsRune(text, '\x00')
}

// Sanitize prepares free text for storage: NUL bytes are stripped,
// HTML-significant characters are entity escaped, and surrounding
// whitespace is trimmed. Applied to every title and description before
// it reaches the database.
func Sanitize(text string) string {
	cleaned := strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(html.EscapeString(cleaned))
}
