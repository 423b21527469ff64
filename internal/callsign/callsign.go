// Package callsign normalizes amateur radio callsigns.
//
// Portable operation decorates a callsign with prefix or suffix segments
// separated by "/", e.g. "VP5/WD5JR" or "WD5JR/P". Aggregation keys and
// external stat lookups want the undecorated call.
package callsign

import "strings"

// Base strips portable decorations and returns the base callsign. With
// multiple segments the longest one is taken as the base call; on a tie the
// earlier segment wins, which handles prefix style ("VP5/WD5JR") and suffix
// style ("WD5JR/M") alike. The result is upper-cased.
func Base(call string) string {
	call = strings.ToUpper(strings.TrimSpace(call))
	if call == "" {
		return ""
	}
	segments := strings.Split(call, "/")
	base := segments[0]
	for _, s := range segments[1:] {
		if len(s) > len(base) {
			base = s
		}
	}
	return base
}

// Home returns the segment identifying the activator's home license, used
// for external stat lookups: the middle segment of a three-part portable
// call ("W4/K7ABC/P" -> "K7ABC"), otherwise the first segment.
func Home(call string) string {
	call = strings.ToUpper(strings.TrimSpace(call))
	segments := strings.Split(call, "/")
	if len(segments) == 3 {
		return segments[1]
	}
	return segments[0]
}
