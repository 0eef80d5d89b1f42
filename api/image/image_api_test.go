package image

import (
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"catalog.GO/config"
)

func thumbApp(t *testing.T) *echo.Echo {
	t.Helper()
	config.LoadAppConfig()
	e := echo.New()
	e.GET("/image/thumb", handleThumb)
	return e
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		img := image.NewRGBA(image.Rect(0, 0, 200, 100))
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, img)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestThumb_JPEG(t *testing.T) {
	e := thumbApp(t)
	srv := imageServer(t)

	req := httptest.NewRequest(http.MethodGet, "/image/thumb?src="+srv.URL+"/p.png&size=60", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/jpeg" {
		t.Errorf("Content-Type = %s, want image/jpeg", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty body")
	}
}

func TestThumb_WebPWhenAccepted(t *testing.T) {
	e := thumbApp(t)
	srv := imageServer(t)

	req := httptest.NewRequest(http.MethodGet, "/image/thumb?src="+srv.URL+"/p.png", nil)
	req.Header.Set("Accept", "image/webp,image/*")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/webp" {
		t.Errorf("Content-Type = %s, want image/webp", ct)
	}
}

func TestThumb_InvalidSrc(t *testing.T) {
	e := thumbApp(t)

	req := httptest.NewRequest(http.MethodGet, "/image/thumb?src=ftp://nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestThumb_UnreachableFallsBackToPlaceholder(t *testing.T) {
	e := thumbApp(t)

	req := httptest.NewRequest(http.MethodGet, "/image/thumb?src=http://127.0.0.1:1/x.png", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302 redirect to placeholder", rec.Code)
	}
}
