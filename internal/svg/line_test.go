package svg

import (
	"strings"
	"testing"
)

func TestLineProducesSVG(t *testing.T) {
	html, err := Line(400, 200, []float64{1, 0, 2}, []string{"1", "2", "3"}, LineOpts{
		Title:       "Penjualan Harian",
		Description: "Total penjualan per tanggal",
		ShowDots:    true,
	})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if !strings.Contains(output, "<path") {
		t.Fatalf("expected path element in svg")
	}
	if !strings.Contains(output, "aria-labelledby") {
		t.Fatalf("expected accessibility attributes")
	}
	if !strings.Contains(output, "deepskyblue") {
		t.Fatalf("expected default stroke color")
	}
	if !strings.Contains(output, "fill=\"orange\"") {
		t.Fatalf("expected orange dot markers")
	}
}

func TestLineSinglePoint(t *testing.T) {
	html, err := Line(0, 0, []float64{5}, []string{"1"}, LineOpts{})
	if err != nil {
		t.Fatalf("single point should render: %v", err)
	}
	if !strings.Contains(string(html), "<path") {
		t.Fatalf("expected path element")
	}
}

func TestLineRejectsMismatchedLabels(t *testing.T) {
	if _, err := Line(400, 200, []float64{1, 2}, []string{"1"}, LineOpts{}); err == nil {
		t.Fatalf("expected error for mismatched labels")
	}
	if _, err := Line(400, 200, nil, nil, LineOpts{}); err == nil {
		t.Fatalf("expected error for empty series")
	}
}
