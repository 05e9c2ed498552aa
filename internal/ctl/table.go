package ctl

import (
	"fmt"
	"strings"
)

// table accumulates rows and prints them with aligned columns. Column
// widths are computed at flush time from the widest cell.
type table struct {
	indent     string
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

// newTable starts a table with the given indent prefix and column headers.
func newTable(indent string, headers ...string) *table {
	return &table{
		indent:     indent,
		headers:    headers,
		rightAlign: make(map[int]bool),
	}
}

// alignRight marks a column (by index) for right alignment.
func (t *table) alignRight(col int) {
	t.rightAlign[col] = true
}

// row appends one row. Missing cells render empty.
func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

// flush prints the headers, a separator, and every accumulated row.
func (t *table) flush() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, r := range t.rows {
		for i, cell := range r {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var head strings.Builder
	head.WriteString(t.indent)
	for i, h := range t.headers {
		head.WriteString(padRight(h, widths[i]+2))
	}
	fmt.Println(colorize(dim, strings.TrimRight(head.String(), " ")))

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	fmt.Println(colorize(dim, t.indent+strings.Repeat("─", total-2)))

	for _, r := range t.rows {
		var line strings.Builder
		line.WriteString(t.indent)
		for i := range t.headers {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			if t.rightAlign[i] {
				line.WriteString(fmt.Sprintf("%*s  ", widths[i], cell))
			} else {
				line.WriteString(padRight(cell, widths[i]+2))
			}
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
}
