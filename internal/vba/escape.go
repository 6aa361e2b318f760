package vba

import "strings"

// escapeVBA escapes a string for embedding in a VBA string literal: quotes
// are doubled and newlines become vbCrLf concatenations. The result is only
// valid between surrounding double quotes.
func escapeVBA(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", `" & vbCrLf & "`)
	return s
}
