package domain

import (
	"regexp"
	"strings"
)

// UntitledChapter is the title used when a chapter has no level-1 heading.
const UntitledChapter = "Untitled Chapter"

var h1Regex = regexp.MustCompile(`^#\s+(.*\S)`)

// DeriveTitle returns the text of the first level-1 Markdown heading in
// chapter, scanning line by line. Lines before the heading are ignored.
func DeriveTitle(chapter string) string {
	for _, line := range strings.Split(chapter, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := h1Regex.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return UntitledChapter
}
