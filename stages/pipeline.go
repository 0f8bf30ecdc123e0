package stages

import "github.com/docling-go/docling/model"

// RunPage wires Stages 1 through 9 into the single callable path from
// a page's raw predictions to its assembled elements: normalize,
// confidence-filter, resolve dominance, assign cells (producing
// orphans), tighten bboxes, fold orphans back into clusters, route
// Table/Picture children, resolve pairwise overlaps, and finally
// assemble typed page elements (invoking the TableFormer backend
// configured on cfg.Stage9 for every Table cluster). Elements are
// additionally split into the body/header subsets AssembledUnit
// tracks, via each element's own Layer().
func RunPage(pred model.PagePredictions, pageNo int, pageHeight float64, cfg PipelineConfig) (model.AssembledUnit, error) {
	clusters, err := Normalize(pred.Layout, pageHeight, cfg.Stage1)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = FilterByConfidence(clusters, cfg.Stage2)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = ResolveDominance(clusters, cfg.Stage3)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	allCells := append(append([]model.TextCell{}, pred.Cells...), pred.OCRCells...)
	clusters, orphans, err := AssignCells(clusters, allCells, cfg.Stage4)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = TightenBBoxes(clusters, cfg.Stage5)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = ResolveOrphans(clusters, orphans, pageNo, pageHeight, cfg.Stage6)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = RouteChildren(clusters, cfg.Stage7)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	clusters, err = ResolveOverlaps(clusters, cfg.Stage8)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	elements, err := Assemble(clusters, pageNo, cfg.Stage9)
	if err != nil {
		return model.AssembledUnit{}, err
	}

	unit := model.AssembledUnit{Elements: elements}
	for _, e := range elements {
		if e.Layer() == model.ContentLayerFurniture {
			unit.Headers = append(unit.Headers, e)
		} else {
			unit.Body = append(unit.Body, e)
		}
	}
	return unit, nil
}
