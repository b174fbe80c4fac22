package completer

import (
	"unicode"

	"github.com/bastiangx/wordpick/internal/utils"
	"github.com/bastiangx/wordpick/pkg/group"
)

// Filter returns the items whose title contains text, ignoring case.
// Order follows items; the returned pointers address the items slice itself.
func Filter(items []group.Item, text string) []*group.Item {
	matches := make([]*group.Item, 0, len(items))
	for i := range items {
		if utils.StringContainsIgnoreCase(items[i].Title, text) {
			matches = append(matches, &items[i])
		}
	}
	return matches
}

// Segment is a run of a title that either matches the highlight query or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits title into segments, marking every non-overlapping,
// case-insensitive occurrence of query. An empty query yields one unmatched segment.
func Highlight(title, query string) []Segment {
	if title == "" {
		return nil
	}
	if query == "" {
		return []Segment{{Text: title}}
	}

	runes := []rune(title)
	needle := lowerRunes([]rune(query))
	hay := lowerRunes(runes)

	var segments []Segment
	start := 0
	for i := 0; i+len(needle) <= len(hay); {
		if !equalRunes(hay[i:i+len(needle)], needle) {
			i++
			continue
		}
		if i > start {
			segments = append(segments, Segment{Text: string(runes[start:i])})
		}
		segments = append(segments, Segment{Text: string(runes[i : i+len(needle)]), Match: true})
		i += len(needle)
		start = i
	}
	if start < len(runes) {
		segments = append(segments, Segment{Text: string(runes[start:])})
	}
	return segments
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
