package stages

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docling-go/docling/model"
)

var (
	arxivPattern = regexp.MustCompile(`(?i)arxiv:`)

	// runningHeaderAuthorPattern matches reference-style running
	// headers such as "4 M. Lysak, et al." within the first 50 chars.
	runningHeaderAuthorPattern = regexp.MustCompile(`^\d+ [A-Z]\. \S+, et al\.`)

	// runningHeaderTitlePattern matches a document-title-like string
	// ending in a page number, within the first 80 chars.
	runningHeaderTitlePattern = regexp.MustCompile(`^[A-Z][\w\s:,'-]{5,78}\d+$`)

	// sectionHeaderNumberedPattern matches a numbered section header,
	// e.g. "4 Optimized" or "2.1 Background" — excludes bare year/
	// author/reference-looking forms via sectionHeaderExcludePattern.
	sectionHeaderNumberedPattern = regexp.MustCompile(`^\d+(\.\d+)* [A-Z]\w{2,}`)
	sectionHeaderExcludePattern  = regexp.MustCompile(`^(19|20)\d{2}[.,)]`)
)

// ResolveOrphans creates new clusters for text cells left unassigned
// by Stage 4, filters non-content cells (empty, arXiv ids, oversized
// "figure-bbox" cells, table-interior cells, repeating running
// headers), and either merges surviving cells into line/paragraph
// clusters or emits one cluster per cell in single-cell mode. It also
// re-applies running-header filtering to cells already inside
// non-visual clusters, dropping those clusters if they become empty
// (visual clusters — Picture/Table/Figure/Formula — are kept even when
// emptied).
func ResolveOrphans(clusters []model.Cluster, orphanCells []model.TextCell, pageNo int, pageHeight float64, cfg Stage6Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, len(clusters))
	copy(out, clusters)

	var survivors []model.TextCell
	for _, cell := range orphanCells {
		text := strings.TrimSpace(cell.Text)
		if text == "" {
			continue
		}
		if arxivPattern.MatchString(text) {
			continue
		}
		if cell.BoundingBox().Height() > cfg.MaxCellHeight {
			continue
		}
		if insideTableCluster(out, cell, cfg.TableIoSSkip) {
			continue
		}
		if pageNo > 0 && isRunningHeader(text) {
			continue
		}
		survivors = append(survivors, cell)
	}

	// Re-filter cells already assigned to non-visual clusters.
	for i := range out {
		if isVisualLabel(out[i].Label) {
			continue
		}
		if pageNo == 0 {
			continue
		}
		kept := out[i].Cells[:0]
		for _, cell := range out[i].Cells {
			if isRunningHeader(strings.TrimSpace(cell.Text)) {
				continue
			}
			kept = append(kept, cell)
		}
		out[i].Cells = kept
	}
	filtered := out[:0]
	for _, c := range out {
		if len(c.Cells) == 0 && !isVisualLabel(c.Label) && wasNonEmptyBefore(clusters, c.ID) {
			continue
		}
		filtered = append(filtered, c)
	}
	out = filtered

	nextID := model.NextClusterID(out)

	if len(survivors) == 0 {
		return out, nil
	}

	if !cfg.MergeParagraphs {
		for _, cell := range survivors {
			out = append(out, newOrphanCluster(nextID, []model.TextCell{cell}, pageNo, pageHeight))
			nextID++
		}
		return out, nil
	}

	lines := groupIntoLines(survivors, cfg.LineTolerance)
	lines = splitLinesAtSectionHeaders(lines)
	paragraphs := groupLinesIntoParagraphs(lines, cfg.ParagraphGapThresh)

	for _, para := range paragraphs {
		out = append(out, newOrphanCluster(nextID, para, pageNo, pageHeight))
		nextID++
	}
	return out, nil
}

func isVisualLabel(l model.Label) bool {
	return l == model.LabelPicture || l == model.LabelTable || l == model.LabelFigure || l == model.LabelFormula
}

func wasNonEmptyBefore(orig []model.Cluster, id int) bool {
	for _, c := range orig {
		if c.ID == id {
			return len(c.Cells) > 0
		}
	}
	return false
}

func insideTableCluster(clusters []model.Cluster, cell model.TextCell, threshold float64) bool {
	cb := cell.BoundingBox()
	for _, c := range clusters {
		if c.Label != model.LabelTable {
			continue
		}
		if cb.IntersectionOverSelf(c.BBox) > threshold {
			return true
		}
	}
	return false
}

func isRunningHeader(text string) bool {
	if runningHeaderAuthorPattern.MatchString(text) {
		return true
	}
	if len(text) <= 80 && runningHeaderTitlePattern.MatchString(text) {
		return true
	}
	return false
}

func newOrphanCluster(id int, cells []model.TextCell, pageNo int, pageHeight float64) model.Cluster {
	bbox, _ := model.BBoxFromCells(cells)
	text := joinCellText(cells)
	confidence := meanConfidence(cells)
	return model.Cluster{
		ID:         id,
		Label:      classifyOrphan(text, bbox, pageNo, pageHeight),
		BBox:       bbox,
		Confidence: confidence,
		Cells:      cells,
	}
}

func joinCellText(cells []model.TextCell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

func meanConfidence(cells []model.TextCell) float64 {
	if len(cells) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range cells {
		sum += c.ConfidenceOrDefault()
	}
	return sum / float64(len(cells))
}

// classifyOrphan implements the Stage 6 label heuristic: page-0 near-
// top short clusters are SectionHeader (title heuristic); near-top of
// any page is PageHeader; near-bottom is PageFooter; a numbered
// section pattern is SectionHeader; otherwise Text.
func classifyOrphan(text string, bbox model.BoundingBox, pageNo int, pageHeight float64) model.Label {
	height := bbox.Height()
	nearTop := bbox.T < 100
	nearBottom := pageHeight > 0 && bbox.B > pageHeight-100

	if pageNo == 0 && nearTop && height >= 10 && height <= 30 {
		return model.LabelSectionHeader
	}
	if nearTop {
		return model.LabelPageHeader
	}
	if nearBottom {
		return model.LabelPageFooter
	}
	if sectionHeaderNumberedPattern.MatchString(text) && !sectionHeaderExcludePattern.MatchString(text) {
		return model.LabelSectionHeader
	}
	return model.LabelText
}

// groupIntoLines groups cells into lines using vertical-overlap
// tolerance, then sorts lines top-to-bottom and cells left-to-right
// within each line.
func groupIntoLines(cells []model.TextCell, tolerance float64) [][]model.TextCell {
	sorted := make([]model.TextCell, len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BoundingBox().T < sorted[j].BoundingBox().T
	})

	var lines [][]model.TextCell
	for _, cell := range sorted {
		placed := false
		cb := cell.BoundingBox()
		for i := range lines {
			lb, _ := model.BBoxFromCells(lines[i])
			if abs(lb.T-cb.T) <= tolerance {
				lines[i] = append(lines[i], cell)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []model.TextCell{cell})
		}
	}
	for i := range lines {
		sort.SliceStable(lines[i], func(a, b int) bool {
			return lines[i][a].BoundingBox().L < lines[i][b].BoundingBox().L
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		bi, _ := model.BBoxFromCells(lines[i])
		bj, _ := model.BBoxFromCells(lines[j])
		return bi.T < bj.T
	})
	return lines
}

// splitLinesAtSectionHeaders splits a line into two when an embedded
// numbered section-header pattern starts mid-line (e.g. "... text. 4
// Optimized transformer ..."), so the header starts its own paragraph.
func splitLinesAtSectionHeaders(lines [][]model.TextCell) [][]model.TextCell {
	var out [][]model.TextCell
	for _, line := range lines {
		splitAt := -1
		for i := 1; i < len(line); i++ {
			rest := joinCellText(line[i:])
			if sectionHeaderNumberedPattern.MatchString(rest) && !sectionHeaderExcludePattern.MatchString(rest) {
				splitAt = i
				break
			}
		}
		if splitAt == -1 {
			out = append(out, line)
			continue
		}
		out = append(out, line[:splitAt], line[splitAt:])
	}
	return out
}

// groupLinesIntoParagraphs merges consecutive lines into a paragraph
// while the vertical gap between them stays under gapThreshold.
func groupLinesIntoParagraphs(lines [][]model.TextCell, gapThreshold float64) [][]model.TextCell {
	var paragraphs [][]model.TextCell
	var current []model.TextCell
	var prevBottom float64
	havePrev := false

	for _, line := range lines {
		lb, ok := model.BBoxFromCells(line)
		if !ok {
			continue
		}
		if havePrev && lb.T-prevBottom > gapThreshold {
			paragraphs = append(paragraphs, current)
			current = nil
		}
		current = append(current, line...)
		prevBottom = lb.B
		havePrev = true
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
