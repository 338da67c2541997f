package dashboard

import (
	"fmt"
	"net/http"

	"github.com/retail-daya/retail-daya/internal/view"
)

// RenderFunc draws one dashboard page.
type RenderFunc func(w http.ResponseWriter, r *http.Request)

// Page is a registered dashboard page. Pages are declared at startup; there
// is no directory scanning and nothing is evaluated at request time.
type Page struct {
	ID       string
	Title    string
	Category string
	Render   RenderFunc
}

// Registry maps page identifiers to render functions, preserving
// registration order for the sidebar menu.
type Registry struct {
	order []string
	pages map[string]Page
}

// NewRegistry builds a registry from the given pages.
func NewRegistry(pages ...Page) (*Registry, error) {
	reg := &Registry{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if p.ID == "" || p.Render == nil {
			return nil, fmt.Errorf("dashboard: page %q needs an id and a render func", p.ID)
		}
		if _, dup := reg.pages[p.ID]; dup {
			return nil, fmt.Errorf("dashboard: duplicate page id %q", p.ID)
		}
		reg.pages[p.ID] = p
		reg.order = append(reg.order, p.ID)
	}
	return reg, nil
}

// Lookup resolves a page by id.
func (reg *Registry) Lookup(id string) (Page, bool) {
	p, ok := reg.pages[id]
	return p, ok
}

// Menu lists the pages in registration order for the sidebar.
func (reg *Registry) Menu() []view.MenuItem {
	items := make([]view.MenuItem, 0, len(reg.order))
	for _, id := range reg.order {
		p := reg.pages[id]
		items = append(items, view.MenuItem{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Path:     "/dashboard/" + p.ID,
		})
	}
	return items
}
