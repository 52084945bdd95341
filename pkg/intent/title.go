package intent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromKey derives a human-readable display title from an intent key by
// splitting on separators and title-casing each segment.
func TitleFromKey(k Key) string {
	segments := strings.FieldsFunc(string(k), func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	// cases.Caser is stateful, so build one per call.
	caser := cases.Title(language.English)
	for n, s := range segments {
		segments[n] = caser.String(s)
	}
	return strings.Join(segments, " ")
}
