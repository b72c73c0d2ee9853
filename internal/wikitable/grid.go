// Package wikitable turns semi-structured wiki HTML tables into normalized
// distribution-event records: span-resolved grid expansion, header
// heuristics, and free-text classification into closed category sets.
package wikitable

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Expand resolves a <table> node into a rectangular 2-D text grid with
// rowspan/colspan propagation matching HTML rendering semantics: every
// position covered by a spanning cell carries that cell's text, and later
// literal cells skip over occupied positions. Malformed span declarations
// degrade to a best-effort grid, never an error.
func Expand(table *html.Node) [][]string {
	rows := tableRows(table)

	var grid [][]string
	occupied := map[[2]int]bool{}

	ensure := func(r, c int) {
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], "")
		}
	}

	for ri, row := range rows {
		gi := 0
		for _, cell := range rowCells(row) {
			for occupied[[2]int{ri, gi}] {
				gi++
			}

			rs := spanAttr(cell, "rowspan")
			cs := spanAttr(cell, "colspan")
			text := CleanText(cell)

			for dr := 0; dr < rs; dr++ {
				for dc := 0; dc < cs; dc++ {
					r, c := ri+dr, gi+dc
					ensure(r, c)
					grid[r][c] = text
					if dr > 0 || dc > 0 {
						occupied[[2]int{r, c}] = true
					}
				}
			}
			gi += cs
		}
	}

	// Pad to a rectangle.
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	for i := range grid {
		for len(grid[i]) < width {
			grid[i] = append(grid[i], "")
		}
	}
	return grid
}

// tableRows returns the table's <tr> nodes in document order, looking
// through one level of <thead>/<tbody> grouping.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for child := table.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.DataAtom {
		case atom.Tr:
			rows = append(rows, child)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := child.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, c)
		}
	}
	return cells
}

// spanAttr reads a span attribute, clamping anything unparseable to 1.
func spanAttr(n *html.Node, name string) int {
	for _, a := range n.Attr {
		if a.Key == name {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 0 {
				return v
			}
			return 1
		}
	}
	return 1
}

// CleanText returns the node subtree's text with whitespace runs collapsed
// to single spaces.
func CleanText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
