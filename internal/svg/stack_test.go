package svg

import (
	"strings"
	"testing"
)

func TestStackedProducesSVG(t *testing.T) {
	data := StackData{
		Labels:     []string{"1", "2", "3"},
		Categories: []string{"BEAT", "VARIO"},
		Values: map[string][]float64{
			"BEAT":  {1, 0, 1},
			"VARIO": {1, 0, 0},
		},
		Overlay: []float64{2, 0, 1},
	}
	html, err := Stacked(400, 200, data, StackOpts{
		Title:        "Penjualan per SERIES",
		OverlayLabel: "Total",
	})
	if err != nil {
		t.Fatalf("stacked renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if strings.Count(output, "<rect") < 3 {
		t.Fatalf("expected bar segments plus legend swatches")
	}
	if !strings.Contains(output, "aria-label=\"Total\"") {
		t.Fatalf("expected labelled overlay path")
	}
	if !strings.Contains(output, "BEAT") || !strings.Contains(output, "VARIO") {
		t.Fatalf("expected category legend entries")
	}
}

func TestStackedAllZeroStillRenders(t *testing.T) {
	data := StackData{
		Labels:     []string{"1", "2"},
		Categories: []string{"A"},
		Values:     map[string][]float64{"A": {0, 0}},
	}
	html, err := Stacked(400, 200, data, StackOpts{})
	if err != nil {
		t.Fatalf("all-zero chart should render: %v", err)
	}
	if !strings.HasPrefix(string(html), "<svg") {
		t.Fatalf("expected svg output")
	}
}

func TestStackedRejectsBadShapes(t *testing.T) {
	if _, err := Stacked(400, 200, StackData{}, StackOpts{}); err == nil {
		t.Fatalf("expected error for empty labels")
	}
	bad := StackData{
		Labels:     []string{"1", "2"},
		Categories: []string{"A"},
		Values:     map[string][]float64{"A": {1}},
	}
	if _, err := Stacked(400, 200, bad, StackOpts{}); err == nil {
		t.Fatalf("expected error for category length mismatch")
	}
	bad = StackData{
		Labels:     []string{"1", "2"},
		Categories: []string{"A"},
		Values:     map[string][]float64{"A": {1, 2}},
		Overlay:    []float64{3},
	}
	if _, err := Stacked(400, 200, bad, StackOpts{}); err == nil {
		t.Fatalf("expected error for overlay length mismatch")
	}
}
