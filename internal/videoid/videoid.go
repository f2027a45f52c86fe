// Package videoid extracts canonical YouTube video identifiers from URLs.
package videoid

import "regexp"

// Length of a canonical video identifier.
const Length = 11

// Patterns are tried in order; the first capture group is the identifier.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`youtube\.com/live/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`youtube\.com/(?:shorts|embed)/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
}

// Extract returns the video identifier in raw, or "" when no known URL shape matches.
func Extract(raw string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return ""
}

// WatchURL returns the canonical watch page URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
