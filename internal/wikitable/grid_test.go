package wikitable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseTable(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var table *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			table = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	require.NotNil(t, table)
	return table
}

func TestExpandPlainTable(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><th>a</th><th>b</th></tr>
		<tr><td>1</td><td>2</td></tr>
	</table>`)

	grid := Expand(table)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, grid)
}

func TestExpandRowAndColSpan(t *testing.T) {
	// x spans 2 rows and 2 columns; every covered position must read "x"
	// and the next literal cell in the first row lands at column 2.
	table := parseTable(t, `<table>
		<tr><td rowspan="2" colspan="2">x</td><td>a</td></tr>
		<tr><td>b</td></tr>
		<tr><td>c</td><td>d</td><td>e</td></tr>
	</table>`)

	grid := Expand(table)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"x", "x", "a"}, grid[0])
	assert.Equal(t, []string{"x", "x", "b"}, grid[1])
	assert.Equal(t, []string{"c", "d", "e"}, grid[2])
}

func TestExpandRowSpanSkipsOccupied(t *testing.T) {
	// The second row's first literal cell must shift right past the
	// position occupied by the rowspan from above.
	table := parseTable(t, `<table>
		<tr><td rowspan="2">left</td><td>r0</td></tr>
		<tr><td>r1</td></tr>
	</table>`)

	grid := Expand(table)
	assert.Equal(t, [][]string{{"left", "r0"}, {"left", "r1"}}, grid)
}

func TestExpandPadsRaggedRows(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>d</td></tr>
	</table>`)

	grid := Expand(table)
	require.Len(t, grid, 2)
	assert.Len(t, grid[1], 3)
	assert.Equal(t, "", grid[1][2])
}

func TestExpandTbodyRows(t *testing.T) {
	table := parseTable(t, `<table><tbody>
		<tr><td>a</td></tr>
	</tbody></table>`)

	grid := Expand(table)
	assert.Equal(t, [][]string{{"a"}}, grid)
}

func TestExpandBadSpanAttr(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td colspan="abc">a</td><td colspan="0">b</td></tr>
	</table>`)

	grid := Expand(table)
	assert.Equal(t, [][]string{{"a", "b"}}, grid)
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	table := parseTable(t, "<table><tr><td>  皮卡丘\n  <b>♂</b>  </td></tr></table>")
	grid := Expand(table)
	assert.Equal(t, "皮卡丘 ♂", grid[0][0])
}
