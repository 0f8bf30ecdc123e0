package stages

import (
	"context"
	"strings"

	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/sanitize"
	"github.com/docling-go/docling/tableformer"
)

// Assemble turns the final per-page cluster set into typed page
// elements: text-family clusters become TextElement (sanitized,
// list-marker-extracted, embedded-header-split into sibling elements),
// table-family clusters become TableElement, figure-family clusters
// become FigureElement, container-family clusters become
// ContainerElement with routed Children. PageHeader/PageFooter
// clusters are tagged ContentLayerFurniture; everything else is Body.
//
// IDs for elements produced by splitting a single cluster at an
// embedded section-header boundary are derived as baseID + k*1000,
// where baseID is the owning cluster's ID and k is the split index —
// this keeps split-off siblings distinguishable while staying stable
// across reruns of the same cluster set.
func Assemble(clusters []model.Cluster, pageNo int, cfg Stage9Config) ([]model.PageElement, error) {
	var out []model.PageElement

	for _, c := range clusters {
		switch {
		case c.Label.IsTextElement():
			out = append(out, assembleText(c, pageNo)...)
		case c.Label.IsTable():
			out = append(out, assembleTable(c, pageNo, cfg))
		case c.Label.IsFigure():
			out = append(out, assembleFigure(c, pageNo, cfg))
		case c.Label.IsContainer():
			out = append(out, assembleContainer(c, pageNo))
		}
	}
	return out, nil
}

func layerFor(l model.Label) model.ContentLayer {
	if l.IsFurniture() {
		return model.ContentLayerFurniture
	}
	return model.ContentLayerBody
}

func cellTexts(cells []model.TextCell) []string {
	lines := make([]string, len(cells))
	for i, c := range cells {
		lines[i] = c.Text
	}
	return lines
}

func charSpanFor(cells []model.TextCell) [2]int {
	if len(cells) == 0 {
		return [2]int{0, 0}
	}
	return [2]int{cells[0].Index, cells[len(cells)-1].Index}
}

// assembleText sanitizes a text-family cluster's cell text and, for
// SectionHeader-capable labels, splits it at embedded numbered-heading
// boundaries into a text/section_header/text sequence of sibling
// elements sharing the cluster's bbox and provenance page.
func assembleText(c model.Cluster, pageNo int) []model.PageElement {
	orig := strings.Join(cellTexts(c.Cells), " ")
	sanitized := sanitize.Text(cellTexts(c.Cells))

	prov := model.Provenance{PageNo: pageNo, BBox: c.BBox, CharSpan: charSpanFor(c.Cells)}

	if c.Label == model.LabelListItem {
		lm := sanitize.ExtractListMarker(sanitized)
		te := &model.TextElement{
			ID: c.ID, Ref: "", PageNo: pageNo, Cluster: c,
			ContentLayer: layerFor(c.Label), Prov: prov,
			Orig: orig, Text: lm.Text,
		}
		if lm.HasMarker {
			te.Marker = &model.ListMarker{Marker: lm.Marker, Enumerated: lm.Enumerated}
		}
		return []model.PageElement{te}
	}

	segments := sanitize.SplitAtSectionHeaders(sanitized)
	if len(segments) <= 1 {
		return []model.PageElement{&model.TextElement{
			ID: c.ID, Ref: "", PageNo: pageNo, Cluster: c,
			ContentLayer: layerFor(c.Label), Prov: prov,
			Orig: orig, Text: sanitized,
		}}
	}

	out := make([]model.PageElement, 0, len(segments))
	for k, seg := range segments {
		id := c.ID
		label := c.Label
		if k > 0 {
			id = c.ID + k*1000
		}
		if seg.Label == "section_header" {
			label = model.LabelSectionHeader
		} else if k > 0 {
			label = model.LabelText
		}
		sub := c
		sub.ID = id
		sub.Label = label
		out = append(out, &model.TextElement{
			ID: id, Ref: "", PageNo: pageNo, Cluster: sub,
			ContentLayer: layerFor(label), Prov: prov,
			Orig: orig, Text: seg.Text,
		})
	}
	return out
}

// assembleTable invokes the configured TableFormer backend (the
// neural backend when cfg.TableCropper can produce a crop tensor for
// this cluster, the geometric fallback otherwise) to recognize the
// table's row/column grid. A backend error, or a reconstruction with
// NumRows==0, yields a TableElement with an empty grid rather than
// propagating the failure into the surrounding page pipeline.
func assembleTable(c model.Cluster, pageNo int, cfg Stage9Config) model.PageElement {
	prov := model.Provenance{PageNo: pageNo, BBox: c.BBox, CharSpan: charSpanFor(c.Cells)}
	te := &model.TableElement{
		ID: c.ID, Ref: "", PageNo: pageNo, Cluster: c,
		ContentLayer: layerFor(c.Label), Prov: prov,
	}

	backend := cfg.TableBackend
	var cropTensor []float32
	if backend == nil {
		backend = tableformer.GeometricBackend{}
	} else if cfg.TableCropper != nil {
		cropTensor = cfg.TableCropper(c.BBox)
	} else {
		backend = tableformer.GeometricBackend{}
	}

	result, err := backend.Recognize(context.Background(), c.BBox, cropTensor, c.Cells, cfg.TableOCR)
	if err != nil || result.NumRows == 0 {
		return te
	}
	te.NumRows = result.NumRows
	te.NumCols = result.NumCols
	te.OTSLSeq = result.OTSLSeq
	te.TableCells = result.TableCells
	return te
}

func assembleFigure(c model.Cluster, pageNo int, cfg Stage9Config) model.PageElement {
	prov := model.Provenance{PageNo: pageNo, BBox: c.BBox, CharSpan: charSpanFor(c.Cells)}
	fe := &model.FigureElement{
		ID: c.ID, Ref: "", PageNo: pageNo, Cluster: c,
		ContentLayer: layerFor(c.Label), Prov: prov,
	}
	if cfg.AttachPictureOCR && len(c.Children) > 0 {
		text := sanitize.Text(cellTexts(c.Children[0].Cells))
		if text != "" {
			fe.OCRText = &text
		}
	}
	return fe
}

func assembleContainer(c model.Cluster, pageNo int) model.PageElement {
	prov := model.Provenance{PageNo: pageNo, BBox: c.BBox, CharSpan: charSpanFor(c.Cells)}
	ce := &model.ContainerElement{
		ID: c.ID, Ref: "", PageNo: pageNo, Cluster: c,
		ContentLayer: layerFor(c.Label), Prov: prov,
	}
	for _, child := range c.Children {
		ce.Children = append(ce.Children, assembleTable(child, pageNo, cfg))
	}
	return ce
}
