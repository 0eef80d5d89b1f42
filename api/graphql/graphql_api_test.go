package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"catalog.GO/config"
	"catalog.GO/model/store"
)

func graphqlTestApp(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()
	config.LoadAppConfig()

	st := store.NewStore(10)
	err := st.Load([]map[string]interface{}{
		{"id": float64(1), "title": "Wireless Mouse", "price": 19.99, "images": []interface{}{"m.png"}},
		{"id": float64(2), "title": "USB Cable", "price": 4.5},
		{"id": float64(3), "title": "USB Hub", "price": 12.0},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	e := echo.New()
	RegisterGraphQLRoutes(e, st)
	return e, st
}

func execQuery(t *testing.T, e *echo.Echo, query string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /graphql status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data   map[string]interface{} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("graphql errors: %+v", resp.Errors)
	}
	return resp.Data
}

func TestGraphQL_Products(t *testing.T) {
	e, _ := graphqlTestApp(t)

	data := execQuery(t, e, `{
		products(search: "usb", sort: "price-asc") {
			totalCount
			items { id title price categoryName }
			pageInfo { currentPage totalPages hasNext hasPrev }
		}
	}`)

	page := data["products"].(map[string]interface{})
	if page["totalCount"].(float64) != 2 {
		t.Errorf("totalCount = %v, want 2", page["totalCount"])
	}
	items := page["items"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["title"] != "USB Cable" {
		t.Errorf("first item = %v, want cheapest USB product", first["title"])
	}
	if first["categoryName"] != "N/A" {
		t.Errorf("categoryName = %v, want N/A fallback", first["categoryName"])
	}
	info := page["pageInfo"].(map[string]interface{})
	if info["hasNext"].(bool) || info["hasPrev"].(bool) {
		t.Errorf("pageInfo = %v, want single page", info)
	}
}

func TestGraphQL_ProductsDoesNotTouchStoreState(t *testing.T) {
	e, st := graphqlTestApp(t)

	execQuery(t, e, `{ products(search: "usb") { totalCount } }`)

	if st.Term() != "" {
		t.Errorf("store term = %q, want untouched", st.Term())
	}
}

func TestGraphQL_Product(t *testing.T) {
	e, _ := graphqlTestApp(t)

	data := execQuery(t, e, `{ product(id: 1) { id title imageUrl images } }`)
	p := data["product"].(map[string]interface{})
	if p["title"] != "Wireless Mouse" {
		t.Errorf("product = %v", p)
	}
	if p["imageUrl"] != "m.png" {
		t.Errorf("imageUrl = %v, want m.png", p["imageUrl"])
	}
}

func TestGraphQL_ProductMissingIsNull(t *testing.T) {
	e, _ := graphqlTestApp(t)

	data := execQuery(t, e, `{ product(id: 999) { id } }`)
	if data["product"] != nil {
		t.Errorf("product = %v, want null", data["product"])
	}
}

func TestGraphQL_UnknownExtension(t *testing.T) {
	e, _ := graphqlTestApp(t)

	body, _ := json.Marshal(map[string]string{"query": `{ extension(name: "nope") }`})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Errors) == 0 {
		t.Fatal("want error for unknown extension")
	}
}
