// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

// Truncate shortens text to length runes followed by "..." when it is longer
// than length, so a zero length gives "..." for any non-empty text. A
// negative length leaves text unchanged.
func Truncate(text string, length int) string {
	if length < 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}
