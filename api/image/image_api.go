package image

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"

	"catalog.GO/api"
	"catalog.GO/config"
	"catalog.GO/core/cache"
	"catalog.GO/model/store"
	catalogService "catalog.GO/service/catalog"
)

const (
	defaultThumbSize = 60
	maxThumbSize     = 600
	maxImageBytes    = 10 * 1024 * 1024
	thumbCacheTTL    = 3600 // seconds
)

var fetchClient = &http.Client{Timeout: 10 * time.Second}

func init() {
	api.RegisterRoute(RegisterImageRoutes)
}

// RegisterImageRoutes wires the product thumbnail proxy: fetches the image
// behind src, resizes it, and serves WebP when the client accepts it.
func RegisterImageRoutes(e *echo.Echo, _ *store.Store, _ *catalogService.Client) {
	e.GET("/image/thumb", handleThumb)
}

func handleThumb(c echo.Context) error {
	src := c.QueryParam("src")
	parsed, err := url.Parse(src)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "src must be an http(s) URL"})
	}

	size := defaultThumbSize
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v > 0 {
		size = v
	}
	if size > maxThumbSize {
		size = maxThumbSize
	}

	format := "jpeg"
	contentType := "image/jpeg"
	if strings.Contains(c.Request().Header.Get("Accept"), "image/webp") {
		format = "webp"
		contentType = "image/webp"
	}

	mem := cache.GetInstance()
	if v, ok := mem.GetN("thumb", src, size, format); ok {
		return c.Blob(http.StatusOK, contentType, v.([]byte))
	}

	data, err := fetchImage(src)
	if err != nil {
		// Same fallback the table shows for broken images
		return c.Redirect(http.StatusFound, config.AppConfig.PlaceholderThumb)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return c.Redirect(http.StatusFound, config.AppConfig.PlaceholderThumb)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)
	var buf bytes.Buffer
	if format == "webp" {
		err = webp.Encode(&buf, thumb, &webp.Options{Quality: 80})
	} else {
		err = imaging.Encode(&buf, thumb, imaging.JPEG)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	mem.SetN([]interface{}{"thumb", src, size, format}, buf.Bytes(), thumbCacheTTL, []string{"images"})
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func fetchImage(src string) ([]byte, error) {
	resp, err := fetchClient.Get(src)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &catalogService.RemoteError{Op: "fetch image", Status: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}
