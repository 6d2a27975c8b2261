package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const sessionCookie = "storefront_session"

// Handler is the JSON surface the storefront UI talks to. It owns no
// business rules beyond translating requests into index/ledger calls.
type Handler struct {
	index    *catalogapp.Index
	sessions *cartapp.Store
	log      *slog.Logger
}

func NewHandler(index *catalogapp.Index, sessions *cartapp.Store, log *slog.Logger) *Handler {
	return &Handler{index: index, sessions: sessions, log: log}
}

// Router wires the API routes. allowedOrigins feeds the CORS middleware so
// the browser UI can call us from its own origin.
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/api/products", h.listProducts)
	r.Get("/api/cart", h.getCart)
	r.Post("/api/cart/items", h.addItem)
	r.Post("/api/cart/items/{title}/increase", h.increaseItem)
	r.Post("/api/cart/items/{title}/decrease", h.decreaseItem)
	r.Delete("/api/cart/items/{title}", h.removeItem)

	return r
}

type productJSON struct {
	Title  string `json:"title"`
	Vendor string `json:"vendor"`
	Price  string `json:"price"`
	Image  string `json:"image"`
}

type lineItemJSON struct {
	productJSON
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartJSON struct {
	Items      []lineItemJSON `json:"items"`
	ItemCount  int            `json:"item_count"`
	GrandTotal string         `json:"grand_total"`
}

// listProducts serves the product grid. Search and category filtering are
// mutually exclusive views of the same grid, so supplying both is rejected
// rather than silently picking one.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	categories := r.URL.Query().Get("categories")

	if q != "" && categories != "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "q and categories are mutually exclusive")
		return
	}

	view := catalogapp.View{Mode: catalogapp.ModeAll}
	switch {
	case q != "":
		view = catalogapp.View{Mode: catalogapp.ModeSearch, Query: q}
	case categories != "":
		view = catalogapp.View{Mode: catalogapp.ModeCategories, Categories: strings.Split(categories, ",")}
	}

	products := h.index.Products(view)
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	ledger, _ := h.session(w, r)
	h.writeCart(w, ledger)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "missing title")
		return
	}

	ledger, sid := h.session(w, r)
	ledger.Add(body.Title)
	h.log.Info("cart add", slog.String("session", sid), slog.String("title", body.Title))
	h.writeCart(w, ledger)
}

func (h *Handler) increaseItem(w http.ResponseWriter, r *http.Request) {
	ledger, _ := h.session(w, r)
	ledger.Increase(chi.URLParam(r, "title"))
	h.writeCart(w, ledger)
}

func (h *Handler) decreaseItem(w http.ResponseWriter, r *http.Request) {
	ledger, _ := h.session(w, r)
	ledger.Decrease(chi.URLParam(r, "title"))
	h.writeCart(w, ledger)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ledger, _ := h.session(w, r)
	ledger.Remove(chi.URLParam(r, "title"))
	h.writeCart(w, ledger)
}

// session returns the ledger for the request's session cookie, minting a
// fresh session id when the cookie is absent.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*cartapp.Ledger, string) {
	var sid string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		sid = c.Value
	} else {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.sessions.GetOrCreate(sid), sid
}

func (h *Handler) writeCart(w http.ResponseWriter, ledger *cartapp.Ledger) {
	resolve := h.index.Catalog().FindProduct

	items := ledger.LineItems(resolve)
	out := cartJSON{
		Items:      make([]lineItemJSON, 0, len(items)),
		ItemCount:  ledger.TotalItemCount(),
		GrandTotal: ledger.GrandTotal(resolve).String(),
	}
	for _, item := range items {
		out.Items = append(out.Items, lineItemJSON{
			productJSON: toProductJSON(item.Product),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		Title:  p.Title,
		Vendor: p.Vendor,
		Price:  p.Price.String(),
		Image:  p.Image,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
