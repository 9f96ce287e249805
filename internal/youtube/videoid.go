package youtube

import "regexp"

// A video ID is exactly 11 characters of [A-Za-z0-9_-]. One pattern per
// recognized URL shape; layout drift on the platform side shows up as a
// failing pattern, so each is pinned by a unit test.
var videoIDPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"watch", regexp.MustCompile(`youtube\.com/watch\?(?:[^#\s]*&)?v=([\w-]{11})`)},
	{"short", regexp.MustCompile(`youtu\.be/([\w-]{11})`)},
	{"embed", regexp.MustCompile(`youtube\.com/embed/([\w-]{11})`)},
	{"legacy", regexp.MustCompile(`youtube\.com/v/([\w-]{11})`)},
	{"live", regexp.MustCompile(`youtube\.com/live/([\w-]{11})`)},
}

// ExtractVideoID pulls the 11-character video ID out of a URL. Absence
// of a match is a normal outcome, reported via ok, never a panic.
func ExtractVideoID(rawURL string) (id string, ok bool) {
	for _, p := range videoIDPatterns {
		if m := p.re.FindStringSubmatch(rawURL); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}
