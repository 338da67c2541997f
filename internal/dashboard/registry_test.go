package dashboard

import (
	"net/http"
	"testing"
)

func noopRender(w http.ResponseWriter, r *http.Request) {}

func TestRegistryLookupAndMenu(t *testing.T) {
	reg, err := NewRegistry(
		Page{ID: "unit-profile", Title: "Profil Penjualan", Category: "Profile H1", Render: noopRender},
		Page{ID: "customer-profile", Title: "Profil Konsumen", Category: "Profile H1", Render: noopRender},
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	page, ok := reg.Lookup("unit-profile")
	if !ok || page.Title != "Profil Penjualan" {
		t.Fatalf("lookup failed: %+v ok=%v", page, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatalf("unknown id must not resolve")
	}

	menu := reg.Menu()
	if len(menu) != 2 {
		t.Fatalf("expected 2 menu entries got %d", len(menu))
	}
	if menu[0].ID != "unit-profile" || menu[1].ID != "customer-profile" {
		t.Fatalf("menu must keep registration order, got %+v", menu)
	}
	if menu[0].Path != "/dashboard/unit-profile" {
		t.Fatalf("unexpected path %q", menu[0].Path)
	}
}

func TestRegistryRejectsDuplicatesAndBlanks(t *testing.T) {
	if _, err := NewRegistry(
		Page{ID: "a", Render: noopRender},
		Page{ID: "a", Render: noopRender},
	); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := NewRegistry(Page{ID: "", Render: noopRender}); err == nil {
		t.Fatalf("expected empty id error")
	}
	if _, err := NewRegistry(Page{ID: "a"}); err == nil {
		t.Fatalf("expected missing render error")
	}
}
