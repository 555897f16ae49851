package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mmynk/standout/internal/models"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

type createProductRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"image_url,omitempty"`
	CategoryID    string  `json:"category_id,omitempty"`
	VariantATitle string  `json:"variant_a_title,omitempty"`
	VariantBTitle string  `json:"variant_b_title,omitempty"`
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "title is required")
		return
	}
	if req.Price < 0 || req.Stock < 0 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "price and stock must not be negative")
		return
	}

	product := &models.Product{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		VariantATitle: req.VariantATitle,
		VariantBTitle: req.VariantBTitle,
	}
	if err := a.Catalog.CreateProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toProductResponse(*product))
}

type toggleStockRequest struct {
	ProductID string `json:"product_id"`
}

func (a *App) toggleStockHandler(w http.ResponseWriter, r *http.Request) {
	var req toggleStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := a.Catalog.ToggleStock(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "stock": product.Stock})
}

// uploadCSVHandler accepts a multipart form with a "file" field, or a raw
// CSV body when no multipart boundary is present.
func (a *App) uploadCSVHandler(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}

	created, err := a.Catalog.ImportCSV(r.Context(), body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "import_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "created": created})
}

type flagRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type flagResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func (a *App) setFlagHandler(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}

	flag, err := a.Catalog.SetFlag(r.Context(), req.Name, req.Enabled)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, flagResponse{Name: flag.Name, Enabled: flag.Enabled})
}

func (a *App) listFlagsHandler(w http.ResponseWriter, r *http.Request) {
	flags, err := a.Catalog.ListFlags(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]flagResponse, len(flags))
	for i, f := range flags {
		out[i] = flagResponse{Name: f.Name, Enabled: f.Enabled}
	}
	WriteJSON(w, http.StatusOK, out)
}

type productCountResponse struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

type summaryResponse struct {
	Counts      map[string]int         `json:"counts"`
	TopProducts []productCountResponse `json:"top_products"`
}

func (a *App) analyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	topN := a.Cfg.AnalyticsTopN
	if v := r.URL.Query().Get("top"); v != "" {
		if parsed, err := parsePositiveInt(v); err == nil {
			topN = parsed
		}
	}

	summary, err := a.Analytics.Summarize(r.Context(), topN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	top := make([]productCountResponse, len(summary.TopProducts))
	for i, pc := range summary.TopProducts {
		top[i] = productCountResponse{ProductID: pc.ProductID, Count: pc.Count}
	}
	WriteJSON(w, http.StatusOK, summaryResponse{Counts: summary.Counts, TopProducts: top})
}
