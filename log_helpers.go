package main

import "strings"

// shortID returns a truncated UUID string for logging (first 8 chars).
// Example: "550e8400-e29b-41d4-a716-446655440000" -> "550e8400"
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// trimLine strips the line terminator and surrounding spaces from one
// received protocol line.
func trimLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	return strings.Trim(line, " ")
}
