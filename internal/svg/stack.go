package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// StackData carries one stacked bar chart: per-label segments for each
// category plus an optional overlay line (the daily grand total).
type StackData struct {
	Labels     []string
	Categories []string
	Values     map[string][]float64
	Overlay    []float64
}

// Stacked renders a stacked bar chart with an overlay line, the dashboard's
// breakdown-by-dimension view. Values are counts and therefore non-negative.
func Stacked(width, height int, data StackData, opts StackOpts) (template.HTML, error) {
	if len(data.Labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	for _, cat := range data.Categories {
		if len(data.Values[cat]) != len(data.Labels) {
			return "", fmt.Errorf("svg: category %q length must match labels", cat)
		}
	}
	if len(data.Overlay) > 0 && len(data.Overlay) != len(data.Labels) {
		return "", fmt.Errorf("svg: overlay length must match labels")
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
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	overlayColor := fallback(opts.OverlayColor, "deepskyblue")
	overlayLabel := fallback(opts.OverlayLabel, "Total")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	// Scale against the tallest stack or overlay point, whichever is higher.
	maxVal := 0.0
	for i := range data.Labels {
		stack := 0.0
		for _, cat := range data.Categories {
			stack += data.Values[cat][i]
		}
		if stack > maxVal {
			maxVal = stack
		}
	}
	for _, v := range data.Overlay {
		if v > maxVal {
			maxVal = v
		}
	}
	if almostEqual(maxVal, 0) {
		maxVal = 1
	}
	scale := chartHeight / maxVal

	groupWidth := chartWidth / float64(len(data.Labels))
	barWidth := groupWidth * 0.6

	titleID := makeID(opts.Title, "stack-title")
	descID := makeID(opts.Title, "stack-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Stacked chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Penjualan per kategori"))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		value := maxVal * ratio
		y := padding + chartHeight - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	// Axes
	chartBottom := padding + chartHeight
	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-label=\"Sumbu\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, chartBottom))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, chartBottom, padding+chartWidth, chartBottom))
	b.WriteString("</g>")

	// Stacked bars, accumulated bottom-up per label.
	for i, label := range data.Labels {
		x := padding + float64(i)*groupWidth + (groupWidth-barWidth)/2
		cum := 0.0
		for ci, cat := range data.Categories {
			v := data.Values[cat][i]
			if v <= 0 {
				cum += v
				continue
			}
			h := v * scale
			y := chartBottom - (cum+v)*scale
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", x, y, barWidth, h, categoryColor(ci), template.HTMLEscapeString(cat), template.HTMLEscapeString(label)))
			cum += v
		}
		center := padding + float64(i)*groupWidth + groupWidth/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, chartBottom+14, axisColor, template.HTMLEscapeString(label)))
	}

	// Overlay totals line with markers.
	if len(data.Overlay) > 0 {
		var path strings.Builder
		for i, v := range data.Overlay {
			x := padding + float64(i)*groupWidth + groupWidth/2
			y := chartBottom - v*scale
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%.2f %.2f", x, y))
			} else {
				path.WriteString(fmt.Sprintf(" L%.2f %.2f", x, y))
			}
		}
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"3\" stroke-linejoin=\"round\" aria-label=\"%s\"></path>", path.String(), overlayColor, template.HTMLEscapeString(overlayLabel)))
		for i, v := range data.Overlay {
			x := padding + float64(i)*groupWidth + groupWidth/2
			y := chartBottom - v*scale
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"orange\"></circle>", x, y))
		}
	}

	// Legend
	legendY := padding - 12
	if legendY < 12 {
		legendY = 12
	}
	legendX := padding
	for ci, cat := range data.Categories {
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, legendY-8, categoryColor(ci)))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", legendX+14, legendY, axisColor, template.HTMLEscapeString(cat)))
		legendX += 90
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
