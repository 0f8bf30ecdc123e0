package tableformer

import (
	"regexp"
	"strings"

	"github.com/docling-go/docling/model"
)

var (
	pureNumericRun = regexp.MustCompile(`^[\d.\-]+( [\d.\-]+)+$`)
	prefixNumericRun = regexp.MustCompile(`^[A-Za-z][\w.\-]*(\s+[A-Za-z][\w.\-]*)* +[\d.\-]+( +[\d.\-]+)+$`)
)

// SplitValues applies the value-splitting post-process: for any row
// with one non-empty cell whose text is a whitespace-separated token
// run matching either the pure-numeric or prefix-plus-numerics
// pattern, and at least N-1 empty cells in that row, redistributes
// one token per slot (left-to-right: empty cells to the left take
// leading tokens, the source cell keeps the middle token, empty cells
// to the right take the rest). Only applies when numCols >= 3.
func SplitValues(cells []model.TableCell, numRows, numCols int) []model.TableCell {
	if numCols < 3 {
		return cells
	}
	for row := 0; row < numRows; row++ {
		rowCells := rowIndices(cells, row)
		if len(rowCells) == 0 {
			continue
		}
		nonEmpty, empties := partitionRow(cells, rowCells)
		if len(nonEmpty) != 1 {
			continue
		}
		srcIdx := nonEmpty[0]
		tokens := strings.Fields(cells[srcIdx].Text)
		text := cells[srcIdx].Text
		if !pureNumericRun.MatchString(text) && !prefixNumericRun.MatchString(text) {
			continue
		}
		n := len(tokens)
		if len(empties) < n-1 {
			continue
		}
		redistribute(cells, srcIdx, tokens, empties)
	}
	return cells
}

func rowIndices(cells []model.TableCell, row int) []int {
	var out []int
	for i, c := range cells {
		if c.StartRow == row {
			out = append(out, i)
		}
	}
	return out
}

func partitionRow(cells []model.TableCell, rowIdx []int) (nonEmpty, empty []int) {
	for _, i := range rowIdx {
		if strings.TrimSpace(cells[i].Text) == "" {
			empty = append(empty, i)
		} else {
			nonEmpty = append(nonEmpty, i)
		}
	}
	// Empty cells must be ordered by column for left/right redistribution.
	sortByCol(cells, empty)
	return nonEmpty, empty
}

func sortByCol(cells []model.TableCell, idx []int) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && cells[idx[j-1]].StartCol > cells[idx[j]].StartCol; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
}

// redistribute fills leading empty cells with leading tokens, keeps
// the middle token in the source cell, and fills trailing empty cells
// with the remaining tokens.
func redistribute(cells []model.TableCell, srcIdx int, tokens []string, empties []int) {
	n := len(tokens)
	srcCol := cells[srcIdx].StartCol

	var left, right []int
	for _, e := range empties {
		if cells[e].StartCol < srcCol {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}

	valuesForLeft := len(left)
	if valuesForLeft > n-1 {
		valuesForLeft = n - 1
	}
	for i, e := range left {
		if i >= valuesForLeft {
			break
		}
		cells[e].Text = tokens[i]
	}

	midIdx := valuesForLeft
	cells[srcIdx].Text = tokens[midIdx]

	rest := tokens[midIdx+1:]
	for i, e := range right {
		if i >= len(rest) {
			break
		}
		cells[e].Text = rest[i]
	}
}
