package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/retail-daya/retail-daya/internal/sales"
	"github.com/retail-daya/retail-daya/internal/shared"
	"github.com/retail-daya/retail-daya/internal/svg"
	"github.com/retail-daya/retail-daya/internal/view"
	"github.com/retail-daya/retail-daya/jobs"
)

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^\d{2}$`)

	// Metric cards show totals with Indonesian digit grouping (1.234.567).
	idPrinter = message.NewPrinter(language.Indonesian)
)

// Refresher enqueues warehouse cache refresh tasks.
type Refresher interface {
	EnqueueWarehouseRefresh(ctx context.Context, payload jobs.WarehouseRefreshPayload) (*asynq.TaskInfo, error)
}

// Handler serves the gated dashboard pages.
type Handler struct {
	logger    *slog.Logger
	service   *sales.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	registry  *Registry
	refresher Refresher
	now       func() time.Time
}

// NewHandler constructs the dashboard handler and registers its pages.
func NewHandler(logger *slog.Logger, service *sales.Service, templates *view.Engine, csrf *shared.CSRFManager, refresher Refresher) (*Handler, error) {
	h := &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		refresher: refresher,
		now:       time.Now,
	}
	registry, err := NewRegistry(
		Page{ID: "unit-profile", Title: "Profil Penjualan By Tipe Motor", Category: "Profile H1", Render: h.renderUnitProfile},
		Page{ID: "customer-profile", Title: "Profil Konsumen", Category: "Profile H1", Render: h.renderCustomerProfile},
	)
	if err != nil {
		return nil, err
	}
	h.registry = registry
	return h, nil
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// Menu exposes the sidebar entries.
func (h *Handler) Menu() []view.MenuItem {
	return h.registry.Menu()
}

// MountRoutes registers dashboard endpoints onto the router. The caller is
// expected to guard the whole subtree with the auth middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/refresh", h.handleRefresh)
	r.Get("/{pageID}", h.handlePage)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	page, ok := h.registry.Lookup(pageID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Set(shared.SelectedPageKey, page.ID)
		if page.Category != "" {
			sess.Set(shared.SelectedCategoryKey, page.Category)
		}
	}
	page.Render(w, r)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	payload := jobs.WarehouseRefreshPayload{Reason: "manual"}
	if sess != nil {
		payload.RequestedBy = sess.User()
	}
	if _, err := h.refresher.EnqueueWarehouseRefresh(r.Context(), payload); err != nil {
		h.logger.Error("enqueue warehouse refresh", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Penyegaran data dijadwalkan"})
	}
	http.Redirect(w, r, backToSelectedPage(sess), http.StatusSeeOther)
}

// HandleHome renders the landing dashboard with this month's quick totals.
// Both datasets load concurrently; a failure of either surfaces as a visible
// error rather than a partial page.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()
	win := sales.MonthWindow{
		Year:     now.Format("2006"),
		Month:    now.Format("01"),
		StartDay: 1,
	}
	win.EndDay = win.DaysInMonth()

	var unit *sales.UnitProfile
	var customer *sales.CustomerProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		unit, err = h.service.UnitProfile(gctx, win)
		return err
	})
	g.Go(func() error {
		var err error
		customer, err = h.service.CustomerProfile(gctx, win)
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondServiceError(w, "load home totals", err)
		return
	}

	h.render(w, r, "pages/home.html", "Retail Daya", map[string]any{
		"UnitTotal":     idPrinter.Sprintf("%d", unit.Total),
		"CustomerTotal": idPrinter.Sprintf("%d", customer.Total),
	})
}

func (h *Handler) renderUnitProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	facts, err := h.service.Facts(ctx)
	if err != nil {
		h.respondServiceError(w, "load sales facts", err)
		return
	}
	years := sales.Years(facts)
	win := h.parseWindow(r, years)
	profile, err := h.service.UnitProfile(ctx, win)
	if err != nil {
		h.respondServiceError(w, "aggregate unit profile", err)
		return
	}

	labels := dayLabels(profile.Daily)
	overlay := dayValues(profile.Daily)

	data := unitPageData{
		Years:        years,
		Months:       monthOptions(),
		Window:       win,
		DaysInMonth:  win.DaysInMonth(),
		Total:        profile.Total,
		TotalDisplay: idPrinter.Sprintf("%d", profile.Total),
		HasData:      profile.Total > 0,
	}
	if data.HasData {
		if data.DailyChart, err = svg.Line(svg.DefaultWidth, svg.DefaultHeight, overlay, labels, svg.LineOpts{
			Title: "Penjualan Harian", Description: "Total penjualan per tanggal", ShowDots: true,
		}); err != nil {
			h.respondRenderError(w, "daily chart", err)
			return
		}
		if data.SeriesChart, err = stackChart("Penjualan per SERIES", profile.BySeries, labels, overlay); err != nil {
			h.respondRenderError(w, "series chart", err)
			return
		}
		if data.SegmentChart, err = stackChart("Penjualan per SEGMENT", profile.BySegment, labels, overlay); err != nil {
			h.respondRenderError(w, "segment chart", err)
			return
		}
		if data.UnitTypeChart, err = stackChart("Penjualan per TIPEUNIT", profile.ByUnitType, labels, overlay); err != nil {
			h.respondRenderError(w, "unit type chart", err)
			return
		}
		// The heatmap rows follow the salesforce picker: no picker in the
		// request means everyone, a submitted picker with nothing checked
		// means nobody. Columns emptied by the cut are pruned afterwards.
		data.SalesforceOptions = profile.Salesforce.Rows
		subset := profile.Salesforce.Rows
		if q := r.URL.Query(); q.Has("sales_filter") {
			subset = q["sales"]
		}
		data.SelectedSales = make(map[string]bool, len(subset))
		for _, name := range subset {
			data.SelectedSales[name] = true
		}
		visible := profile.Salesforce.FilterRows(subset).PruneZeroColumns()
		if len(visible.Rows) > 0 && len(visible.Cols) > 0 {
			data.HasHeatmap = true
			data.SeriesCols = visible.Cols
			data.SeriesTotals = visible.ColumnTotals()
			height := heatmapHeight(len(visible.Rows))
			if data.HeatmapChart, err = svg.Heatmap(svg.DefaultWidth, height, visible.Rows, visible.Cols, visible.Counts, svg.HeatmapOpts{
				Title: "Salesforce x Series", Description: "Sebaran penjualan per salesforce dan series",
			}); err != nil {
				h.respondRenderError(w, "heatmap chart", err)
				return
			}
		}
	}

	h.render(w, r, "pages/unit_profile.html", "Penjualan By Tipe", data)
}

func (h *Handler) renderCustomerProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	facts, err := h.service.CustomerFacts(ctx)
	if err != nil {
		h.respondServiceError(w, "load customer facts", err)
		return
	}
	years := sales.Years(facts)
	win := h.parseWindow(r, years)
	profile, err := h.service.CustomerProfile(ctx, win)
	if err != nil {
		h.respondServiceError(w, "aggregate customer profile", err)
		return
	}

	labels := dayLabels(profile.Daily)
	overlay := dayValues(profile.Daily)

	data := customerPageData{
		Years:        years,
		Months:       monthOptions(),
		Window:       win,
		DaysInMonth:  win.DaysInMonth(),
		Total:        profile.Total,
		TotalDisplay: idPrinter.Sprintf("%d", profile.Total),
		HasData:      profile.Total > 0,
	}
	if data.HasData {
		if data.DailyChart, err = svg.Line(svg.DefaultWidth, svg.DefaultHeight, overlay, labels, svg.LineOpts{
			Title: "Faktur Harian", Description: "Total faktur per tanggal", ShowDots: true,
		}); err != nil {
			h.respondRenderError(w, "daily chart", err)
			return
		}
		if data.PaymentChart, err = stackChart("Faktur per Tipe Pembayaran", profile.ByPaymentType, labels, overlay); err != nil {
			h.respondRenderError(w, "payment chart", err)
			return
		}
		if data.LeasingChart, err = stackChart("Faktur per Leasing", profile.ByLeasing, labels, overlay); err != nil {
			h.respondRenderError(w, "leasing chart", err)
			return
		}
	}

	h.render(w, r, "pages/customer_profile.html", "Profil Konsumen", data)
}

// parseWindow builds the month window from query parameters, falling back to
// the latest observed year, the current month, and the full day span.
func (h *Handler) parseWindow(r *http.Request, years []string) sales.MonthWindow {
	now := h.now()
	win := sales.MonthWindow{
		Year:  now.Format("2006"),
		Month: now.Format("01"),
	}
	if len(years) > 0 {
		win.Year = years[len(years)-1]
	}
	if y := r.URL.Query().Get("year"); yearPattern.MatchString(y) {
		win.Year = y
	}
	if m := r.URL.Query().Get("month"); monthPattern.MatchString(m) {
		win.Month = m
	}
	win.StartDay = 1
	win.EndDay = win.DaysInMonth()
	if v, err := strconv.Atoi(r.URL.Query().Get("start_day")); err == nil {
		win.StartDay = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("end_day")); err == nil {
		win.EndDay = v
	}
	return win
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidRange):
		http.Error(w, "Rentang hari tidak valid", http.StatusBadRequest)
	case errors.Is(err, shared.ErrUpstreamUnavailable):
		h.logger.Error(op, slog.Any("error", err))
		http.Error(w, "Gudang data tidak dapat dihubungi", http.StatusServiceUnavailable)
	default:
		h.logger.Error(op, slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) respondRenderError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	username := ""
	if sess != nil {
		flash = sess.PopFlash()
		username = sess.User()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Username:    username,
		Menu:        h.registry.Menu(),
		Data:        data,
	}
	if err := h.templates.Render(w, name, viewData); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type unitPageData struct {
	Years             []string
	Months            []string
	Window            sales.MonthWindow
	DaysInMonth       int
	Total             int
	TotalDisplay      string
	HasData           bool
	DailyChart        template.HTML
	SeriesChart       template.HTML
	SegmentChart      template.HTML
	UnitTypeChart     template.HTML
	SalesforceOptions []string
	SelectedSales     map[string]bool
	HasHeatmap        bool
	HeatmapChart      template.HTML
	SeriesCols        []string
	SeriesTotals      []int
}

type customerPageData struct {
	Years        []string
	Months       []string
	Window       sales.MonthWindow
	DaysInMonth  int
	Total        int
	TotalDisplay string
	HasData      bool
	DailyChart   template.HTML
	PaymentChart template.HTML
	LeasingChart template.HTML
}

func stackChart(title string, b *sales.Breakdown, labels []string, overlay []float64) (template.HTML, error) {
	data := svg.StackData{
		Labels:     labels,
		Categories: b.Categories,
		Values:     make(map[string][]float64, len(b.Categories)),
		Overlay:    overlay,
	}
	for _, cat := range b.Categories {
		row := make([]float64, len(b.Counts[cat]))
		for i, v := range b.Counts[cat] {
			row[i] = float64(v)
		}
		data.Values[cat] = row
	}
	return svg.Stacked(svg.DefaultWidth, svg.DefaultHeight, data, svg.StackOpts{
		Title:        title,
		Description:  "Penjualan harian per kategori",
		OverlayLabel: "Total",
	})
}

func dayLabels(daily []sales.DayCount) []string {
	labels := make([]string, len(daily))
	for i, dc := range daily {
		labels[i] = strconv.Itoa(dc.Day)
	}
	return labels
}

func dayValues(daily []sales.DayCount) []float64 {
	values := make([]float64, len(daily))
	for i, dc := range daily {
		values[i] = float64(dc.Count)
	}
	return values
}

func monthOptions() []string {
	months := make([]string, 12)
	for i := range months {
		months[i] = fmt.Sprintf("%02d", i+1)
	}
	return months
}

func heatmapHeight(rows int) int {
	height := 72 + rows*26
	if height < svg.DefaultHeight {
		height = svg.DefaultHeight
	}
	return height
}

func backToSelectedPage(sess *shared.Session) string {
	if sess != nil {
		if id := sess.Get(shared.SelectedPageKey); id != "" {
			return "/dashboard/" + id
		}
	}
	return "/"
}
