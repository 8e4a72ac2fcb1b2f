package cli

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ansiPattern matches SGR escape sequences, which take no space on screen.
var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Table represents a simple table formatter with dynamic column widths.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		row = newRow
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], visibleWidth(cell))
		}
	}

	var result strings.Builder
	sep := strings.Repeat(" ", t.padding)

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padRight(cell, colWidths[i])
		}
		result.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		result.WriteString("\n")
	}

	writeRow(t.headers)

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	writeRow(sepParts)

	for _, row := range t.rows {
		writeRow(row)
	}

	return result.String()
}

// visibleWidth returns the number of terminal cells s occupies, ignoring
// colour escapes.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already at least that wide, it is returned unchanged.
func padRight(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// paletteTable lists each palette colour with its hex, RGB and HSV values.
func paletteTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "Hex", "RGB", "HSV"}
	if showPreview {
		headers = append(headers, "Preview")
	}

	table := NewTable(headers)
	for i, rgb := range palette.ToRGBSlice() {
		hsv := colour.RGBToHSV(colour.Triple{float64(rgb.R) / 255, float64(rgb.G) / 255, float64(rgb.B) / 255})
		row := []string{
			fmt.Sprintf("%d", i+1),
			rgb.Hex(),
			fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B),
			fmt.Sprintf("%3.0f°, %3.0f%%, %3.0f%%", hsv[0]*360, hsv[1]*100, hsv[2]*100),
		}
		if showPreview {
			row = append(row, colour.ColourPreview(rgb, 8))
		}
		table.AddRow(row)
	}
	return table.Render()
}
