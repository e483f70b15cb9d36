package appointment

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	naturalParser = newNaturalParser()
	atSeparator   = regexp.MustCompile(`(?i)\s+at\s+`)
)

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParsePreferredDateTime turns a visitor's free text into a point in time.
// Absolute formats ("January 15, 2026 at 2:00 PM", ISO 8601) are tried first,
// then relative English ("tomorrow 3pm", "next friday at 10am") against now.
// It returns false when neither understands the text.
func ParsePreferredDateTime(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseIn(atSeparator.ReplaceAllString(text, " "), now.Location()); err == nil {
		return t, true
	}

	r, err := naturalParser.Parse(text, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}
