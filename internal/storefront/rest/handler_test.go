package rest_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/storefront/rest"
)

type productResp struct {
	Title  string `json:"title"`
	Vendor string `json:"vendor"`
	Price  string `json:"price"`
}

type cartResp struct {
	Items []struct {
		Title     string `json:"title"`
		Quantity  int    `json:"quantity"`
		LineTotal string `json:"line_total"`
	} `json:"items"`
	ItemCount  int    `json:"item_count"`
	GrandTotal string `json:"grand_total"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := domain.Catalog{Categories: []domain.Category{
		{Name: "Men", Products: []domain.Product{
			{Title: "Shirt", Vendor: "Polo", Price: decimal.NewFromInt(500)},
			{Title: "Shoes", Vendor: "Nike", Price: decimal.NewFromInt(1200)},
		}},
		{Name: "Women", Products: []domain.Product{
			{Title: "Dress", Vendor: "Zara", Price: decimal.NewFromInt(900)},
		}},
	}}

	h := rest.NewHandler(
		catalogapp.NewIndex(catalog),
		cartapp.NewStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	srv := httptest.NewServer(h.Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

// client with a cookie jar so the session cookie round-trips.
func newClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestListProducts(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	t.Run("no params returns everything", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/api/products")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		products := decodeJSON[[]productResp](t, resp)
		require.Len(t, products, 3)
		assert.Equal(t, "Shirt", products[0].Title)
	})

	t.Run("category filter is case-insensitive", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/api/products?categories=women")
		require.NoError(t, err)

		products := decodeJSON[[]productResp](t, resp)
		require.Len(t, products, 1)
		assert.Equal(t, "Dress", products[0].Title)
	})

	t.Run("search matches vendor", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/api/products?q=nike")
		require.NoError(t, err)

		products := decodeJSON[[]productResp](t, resp)
		require.Len(t, products, 1)
		assert.Equal(t, "Shoes", products[0].Title)
	})

	t.Run("search and categories together are rejected", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/api/products?q=nike&categories=Men")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	addItem := func(title string) cartResp {
		resp, err := client.Post(srv.URL+"/api/cart/items", "application/json",
			strings.NewReader(`{"title":"`+title+`"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeJSON[cartResp](t, resp)
	}

	post := func(path string) cartResp {
		resp, err := client.Post(srv.URL+path, "application/json", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeJSON[cartResp](t, resp)
	}

	cart := addItem("Shirt")
	cart = addItem("Shirt")
	cart = addItem("Shirt")
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, "1500", cart.GrandTotal)

	cart = post("/api/cart/items/" + url.PathEscape("Shirt") + "/decrease")
	assert.Equal(t, 2, cart.ItemCount)

	cart = post("/api/cart/items/" + url.PathEscape("Shirt") + "/increase")
	assert.Equal(t, 3, cart.ItemCount)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/cart/items/"+url.PathEscape("Shirt"), nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	cart = decodeJSON[cartResp](t, resp)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
	assert.Equal(t, "0", cart.GrandTotal)
}

func TestCartRejectsMissingTitle(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t, srv)

	resp, err := client.Post(srv.URL+"/api/cart/items", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	resp, err := alice.Post(srv.URL+"/api/cart/items", "application/json", strings.NewReader(`{"title":"Shirt"}`))
	require.NoError(t, err)
	cart := decodeJSON[cartResp](t, resp)
	require.Equal(t, 1, cart.ItemCount)

	resp, err = bob.Get(srv.URL + "/api/cart")
	require.NoError(t, err)
	cart = decodeJSON[cartResp](t, resp)
	assert.Equal(t, 0, cart.ItemCount)
}
