package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Heatmap renders a row-by-column count grid as shaded cells with the count
// printed inside. Shade is proportional to the cell's share of the maximum.
func Heatmap(width, height int, rows, cols []string, counts [][]int, opts HeatmapOpts) (template.HTML, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return "", fmt.Errorf("svg: rows and cols required")
	}
	if len(counts) != len(rows) {
		return "", fmt.Errorf("svg: counts rows must match row labels")
	}
	for i := range counts {
		if len(counts[i]) != len(cols) {
			return "", fmt.Errorf("svg: counts row %d must match col labels", i)
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	cellColor := fallback(opts.CellColor, "37,99,235")

	// Left gutter for row labels, bottom gutter for column labels.
	gutter := 96.0
	gridLeft := padding + gutter
	gridTop := padding
	gridWidth := float64(width) - gridLeft - padding
	gridHeight := float64(height) - 2*padding - 18
	if gridWidth <= 0 || gridHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}
	cellW := gridWidth / float64(len(cols))
	cellH := gridHeight / float64(len(rows))

	maxCount := 0
	for i := range counts {
		for j := range counts[i] {
			if counts[i][j] > maxCount {
				maxCount = counts[i][j]
			}
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	titleID := makeID(opts.Title, "heatmap-title")
	descID := makeID(opts.Title, "heatmap-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Heatmap"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Sebaran penjualan"))))

	for i, row := range rows {
		y := gridTop + float64(i)*cellH
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", gridLeft-6, y+cellH/2+3, axisColor, template.HTMLEscapeString(row)))
		for j := range cols {
			x := gridLeft + float64(j)*cellW
			intensity := float64(counts[i][j]) / float64(maxCount)
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"rgba(%s,%.2f)\" stroke=\"#e2e8f0\" stroke-width=\"0.5\"></rect>", x, y, cellW, cellH, cellColor, 0.08+0.92*intensity))
			textColor := axisColor
			if intensity > 0.6 {
				textColor = "#f8fafc"
			}
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%d</text>", x+cellW/2, y+cellH/2+3, textColor, counts[i][j]))
		}
	}

	for j, col := range cols {
		x := gridLeft + float64(j)*cellW + cellW/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, gridTop+gridHeight+14, axisColor, template.HTMLEscapeString(col)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
