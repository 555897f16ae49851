package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/standout/internal/analytics"
	"github.com/mmynk/standout/internal/auth"
	"github.com/mmynk/standout/internal/config"
	"github.com/mmynk/standout/internal/middleware"
	"github.com/mmynk/standout/internal/models"
	"github.com/mmynk/standout/internal/notify"
	"github.com/mmynk/standout/internal/service"
)

// App bundles the services behind the HTTP surface.
type App struct {
	Cfg       config.Config
	Auth      auth.Authenticator
	JWT       *auth.JWTManager
	Catalog   *service.CatalogService
	Checkout  *service.CheckoutService
	Recommend *service.RecommendService
	Analytics *analytics.Aggregator
	Hub       *notify.Hub
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type productResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"image_url,omitempty"`
	CategoryID    string  `json:"category_id,omitempty"`
	VariantATitle string  `json:"variant_a_title,omitempty"`
	VariantBTitle string  `json:"variant_b_title,omitempty"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		VariantATitle: p.VariantATitle,
		VariantBTitle: p.VariantBTitle,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func (a *App) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "email is required")
		return
	}

	user, err := a.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists), errors.Is(err, auth.ErrWeakPassword):
			WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			writeDomainError(w, err)
		}
		return
	}

	token, err := a.JWT.Generate(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_credentials", "")
		return
	}

	token, err := a.JWT.Generate(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.Catalog.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := a.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProductResponse(*product))
}

func (a *App) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	n := a.Cfg.RecommendN
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := parsePositiveInt(v); err == nil {
			n = parsed
		}
	}

	products, err := a.Recommend.Recommend(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	WriteJSON(w, http.StatusOK, out)
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func (a *App) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	err := a.Checkout.AddToCart(r.Context(), middleware.GetUserID(r.Context()), req.ProductID, req.Qty)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type cartLineResponse struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := a.Checkout.GetCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := cartResponse{Items: make([]cartLineResponse, len(view.Lines)), Total: view.Total}
	for i, line := range view.Lines {
		resp.Items[i] = cartLineResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			Qty:       line.Qty,
			Price:     line.Price,
			Subtotal:  line.Subtotal,
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

type checkoutResponse struct {
	OK      bool    `json:"ok"`
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	order, err := a.Checkout.Checkout(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, checkoutResponse{OK: true, OrderID: order.ID, Total: order.Total})
}

type trackRequest struct {
	EventType string `json:"event_type"`
	ProductID string `json:"product_id,omitempty"`
	Meta      string `json:"meta,omitempty"`
}

func (a *App) trackHandler(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EventType == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "event_type is required")
		return
	}

	err := a.Analytics.Record(r.Context(), &models.Event{
		Type:      req.EventType,
		UserID:    middleware.GetUserID(r.Context()), // empty for anonymous visitors
		ProductID: req.ProductID,
		Meta:      req.Meta,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) inventoryWSHandler(w http.ResponseWriter, r *http.Request) {
	notify.ServeWS(a.Hub, w, r)
}
