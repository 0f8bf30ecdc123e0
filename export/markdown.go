package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/docling-go/docling/model"
)

var (
	topLevelSections = regexp.MustCompile(`(?i)^(abstract|introduction|conclusion|references|bibliography|acknowledgments?|appendix|related\s+work|background|discussion|results|methods?|methodology|experimental?\s+setup|evaluation)$`)
	level1Pattern    = regexp.MustCompile(`^([0-9]+|[A-Z])\.?\s+\S`)
	level2Pattern    = regexp.MustCompile(`^[0-9]+\.[0-9]+\.?\s+\S`)
	level3Pattern    = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+\.?\s+\S`)
	level4Pattern    = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+\.?\s+\S`)
)

// DetectHeaderLevel implements the PDF-specific heading-level
// heuristic: Title is always level 0 (H1); a numbered heading of any
// depth, or an unnumbered top-level section name, is level 1 (H2);
// everything else defaults to level 1. Deeper numeric nesting
// (1.1.1...) is collapsed to level 1 to match the baseline rendering.
func DetectHeaderLevel(text string, label model.Label, _ int) int {
	if label == model.LabelTitle {
		return 0
	}
	trimmed := strings.TrimSpace(text)
	if level4Pattern.MatchString(trimmed) || level3Pattern.MatchString(trimmed) ||
		level2Pattern.MatchString(trimmed) || level1Pattern.MatchString(trimmed) {
		return 1
	}
	if topLevelSections.MatchString(trimmed) {
		return 1
	}
	return 1
}

var months = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

// IsDatePattern reports whether text looks like a calendar date:
// ISO 8601 (YYYY-MM-DD), European (DD.MM.YYYY), or a loose month-name
// form ("5 May 2023", "May 5, 2023") with a plausible day/month/year.
func IsDatePattern(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 10 {
		chars := []rune(trimmed)
		if chars[4] == '-' && chars[7] == '-' {
			if y, err1 := strconv.Atoi(string(chars[0:4])); err1 == nil {
				if mo, err2 := strconv.Atoi(string(chars[5:7])); err2 == nil {
					if d, err3 := strconv.Atoi(string(chars[8:10])); err3 == nil {
						if y >= 1900 && y <= 2099 && mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
							return true
						}
					}
				}
			}
		}
		if chars[2] == '.' && chars[5] == '.' {
			if d, err1 := strconv.Atoi(string(chars[0:2])); err1 == nil {
				if mo, err2 := strconv.Atoi(string(chars[3:5])); err2 == nil {
					if y, err3 := strconv.Atoi(string(chars[6:10])); err3 == nil {
						if d >= 1 && d <= 31 && mo >= 1 && mo <= 12 && y >= 1900 && y <= 2099 {
							return true
						}
					}
				}
			}
		}
	}

	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)
	if len(words) > 4 {
		return false
	}

	hasMonth := false
	for _, m := range months {
		if strings.Contains(lower, m) {
			hasMonth = true
			break
		}
	}
	if !hasMonth {
		return false
	}

	hasYear := false
	hasDay := false
	for _, w := range words {
		digitsOnly := onlyDigits(w)
		if len(digitsOnly) == 4 {
			if y, err := strconv.Atoi(digitsOnly); err == nil && y >= 1900 && y <= 2099 {
				hasYear = true
			}
		}
		lead := leadingDigits(w)
		if lead != "" {
			if d, err := strconv.Atoi(lead); err == nil && d >= 1 && d <= 31 {
				hasDay = true
			}
		}
	}
	return hasYear && hasDay
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func leadingDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsFakeSectionHeader reports whether a SectionHeader-labeled text is
// actually misclassified body content: a reference citation, a data
// list, a metadata date, or a bare label — rendered as plain text
// rather than a heading.
func IsFakeSectionHeader(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if len(trimmed) > 80 {
		return true
	}
	if strings.Contains(trimmed, ";") {
		return true
	}
	upper := strings.ToUpper(trimmed)
	if strings.Contains(upper, "PERCENT") || strings.Contains(upper, "AGENTS AT") {
		return true
	}
	if strings.HasSuffix(trimmed, ":") && !startsWithDigit(trimmed) {
		hasSectionNumber := false
		for _, r := range firstN(trimmed, 5) {
			if r >= '0' && r <= '9' {
				hasSectionNumber = true
				break
			}
		}
		if !hasSectionNumber {
			return true
		}
	}
	if IsDatePattern(trimmed) {
		return true
	}

	digits := leadingDigits(trimmed)
	if len(digits) == 4 {
		if year, err := strconv.Atoi(digits); err == nil && year >= 1800 && year <= 2099 {
			rest := strings.TrimSpace(trimmed[4:])
			restLower := strings.ToLower(rest)
			if strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ",") || strings.HasPrefix(rest, ")") ||
				strings.Contains(restLower, "ieee") || strings.Contains(restLower, "acm") ||
				strings.Contains(restLower, "springer") || strings.Contains(restLower, "pp.") ||
				strings.Contains(restLower, "proceedings") {
				return true
			}
		}
	}
	return false
}

func startsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r >= '0' && r <= '9'
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>]+`)

// LinkifyURLs converts plain https?:// URLs into Markdown links,
// preserving any trailing punctuation outside the link target. Skips
// entirely if the text already contains a Markdown link (avoids
// double-linking already-rendered output).
func LinkifyURLs(text string) string {
	if !strings.Contains(text, "http://") && !strings.Contains(text, "https://") {
		return text
	}
	if strings.Contains(text, "](http") {
		return text
	}
	return urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		url := strings.TrimRight(match, ".,;:!?'\")]")
		trailing := match[len(url):]
		return "[" + url + "](" + url + ")" + trailing
	})
}

// ToMarkdown renders a DoclingDocument's body, in reading order, to
// Markdown: headings (with the fake-section-header demotion),
// paragraphs, tables, figures (an image marker plus any OCR text),
// list items, and code blocks, followed by URL linkification.
func ToMarkdown(doc *model.DoclingDocument) string {
	var b strings.Builder

	for _, ref := range doc.Body {
		renderRef(&b, doc, ref.Ref)
	}

	return LinkifyURLs(b.String())
}

func renderRef(b *strings.Builder, doc *model.DoclingDocument, ref string) {
	kind, idx, ok := parseRef(ref)
	if !ok {
		return
	}
	switch kind {
	case "texts":
		if idx < 0 || idx >= len(doc.Texts) {
			return
		}
		renderText(b, doc.Texts[idx])
	case "tables":
		if idx < 0 || idx >= len(doc.Tables) {
			return
		}
		renderTable(b, doc.Tables[idx])
	case "pictures":
		if idx < 0 || idx >= len(doc.Pictures) {
			return
		}
		renderPicture(b, doc.Pictures[idx])
	case "groups":
		if idx < 0 || idx >= len(doc.Groups) {
			return
		}
		for _, child := range doc.Groups[idx].Children {
			if tbl, ok := child.(*model.TableElement); ok {
				renderTableByRef(b, doc, tbl.Ref)
			}
		}
	}
}

func renderTableByRef(b *strings.Builder, doc *model.DoclingDocument, ref string) {
	_, idx, ok := parseRef(ref)
	if !ok || idx < 0 || idx >= len(doc.Tables) {
		return
	}
	renderTable(b, doc.Tables[idx])
}

func parseRef(ref string) (kind string, idx int, ok bool) {
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	if len(parts) != 2 {
		return "", 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}
	return parts[0], n, true
}

func renderText(b *strings.Builder, t *model.TextElement) {
	label := t.Cluster.Label
	switch {
	case label == model.LabelPageHeader:
		fmt.Fprintf(b, "--- Header: %s ---\n\n", t.Text)
	case label == model.LabelPageFooter:
		fmt.Fprintf(b, "--- Footer: %s ---\n\n", t.Text)
	case label == model.LabelListItem:
		marker := "∞"
		if t.Marker != nil {
			marker = t.Marker.Marker
		}
		fmt.Fprintf(b, "%s %s\n", marker, t.Text)
	case label == model.LabelCode:
		fmt.Fprintf(b, "```\n%s\n```\n\n", t.Text)
	case label == model.LabelSectionHeader || label == model.LabelTitle:
		if IsFakeSectionHeader(t.Text) {
			b.WriteString(t.Text)
			b.WriteString("\n\n")
			return
		}
		level := DetectHeaderLevel(t.Text, label, t.PageNo)
		fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level+1), t.Text)
	default:
		b.WriteString(t.Text)
		b.WriteString("\n\n")
	}
}

func renderTable(b *strings.Builder, t *model.TableElement) {
	b.WriteString(renderTableGrid(t))
	for _, c := range t.Captions {
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	for _, f := range t.Footnotes {
		b.WriteString(f)
		b.WriteString("\n\n")
	}
}

func renderTableGrid(t *model.TableElement) string {
	if t.NumRows == 0 || t.NumCols == 0 {
		return "<!-- empty table -->\n\n"
	}
	grid := make([][]string, t.NumRows)
	for r := range grid {
		grid[r] = make([]string, t.NumCols)
	}
	for _, c := range t.TableCells {
		if c.StartRow < 0 || c.StartRow >= t.NumRows || c.StartCol < 0 || c.StartCol >= t.NumCols {
			continue
		}
		grid[c.StartRow][c.StartCol] = c.Text
	}

	var b strings.Builder
	for r, row := range grid {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
		if r == 0 {
			b.WriteString("|")
			for range row {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPicture(b *strings.Builder, p *model.FigureElement) {
	b.WriteString("<!-- image -->\n\n")
	if p.OCRText != nil {
		trimmed := strings.TrimSpace(*p.OCRText)
		if trimmed != "" {
			b.WriteString(trimmed)
			b.WriteString("\n\n")
		}
	}
	for _, c := range p.Captions {
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	for _, f := range p.Footnotes {
		b.WriteString(f)
		b.WriteString("\n\n")
	}
}
