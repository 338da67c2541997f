package svg

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	StrokeColor string
	FillColor   string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
}

// StackOpts customises the stacked bar renderer.
type StackOpts struct {
	Title        string
	Description  string
	OverlayLabel string
	OverlayColor string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// HeatmapOpts customises the heatmap renderer.
type HeatmapOpts struct {
	Title       string
	Description string
	CellColor   string
	AxisColor   string
	Padding     float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
)

// palette cycles across stacked categories, legend order first-seen.
var palette = []string{
	"#2563eb", "#f97316", "#16a34a", "#dc2626", "#9333ea",
	"#0891b2", "#ca8a04", "#db2777", "#4b5563", "#0d9488",
}

func categoryColor(i int) string {
	return palette[i%len(palette)]
}
