package product

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"catalog.GO/api"
	"catalog.GO/config"
	"catalog.GO/export"
	"catalog.GO/model/entity"
	"catalog.GO/model/store"
	catalogService "catalog.GO/service/catalog"
	"catalog.GO/view"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

// RegisterProductRoutes wires the catalog viewer JSON API. List query params
// are applied as store commands (search, sort toggle, page navigation)
// before the view is recomputed.
func RegisterProductRoutes(apiGroup *echo.Group, st *store.Store, client *catalogService.Client) {
	g := apiGroup.Group("/products")

	// GET /api/products: current view; query params mutate state first
	g.GET("", func(c echo.Context) error {
		applyListCommands(c, st)
		return c.JSON(http.StatusOK, listResponse(st))
	})

	// GET /api/products/export: CSV of the currently visible page only
	g.GET("/export", func(c echo.Context) error {
		if st.Len() == 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no data to export"})
		}
		res := st.View()
		csv := export.Encode(res.Rows)
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName()+`"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	})

	// POST /api/products/reload: retry affordance for a failed load
	g.POST("/reload", func(c echo.Context) error {
		start := time.Now()
		records, err := client.List(c.Request().Context())
		if err == nil {
			err = st.Load(records)
		}
		if err != nil {
			st.SetLoadError(err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, echo.Map{"loaded": st.Len()})
	})

	// GET /api/products/:id: detail view-model
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, ok := st.Get(id)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, view.NewDetail(p, config.AppConfig.PlaceholderImage))
	})

	// POST /api/products: validate, create remotely, prepend locally
	g.POST("", func(c echo.Context) error {
		var payload entity.Payload
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := payload.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		record, err := client.Create(c.Request().Context(), payload)
		if err != nil {
			return remoteFailure(c, err)
		}
		created, err := entity.NormalizeOne(record, 0)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		st.Create(created)
		return c.JSON(http.StatusCreated, created)
	})

	// PUT /api/products/:id: validate, update remotely, merge locally
	g.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		var payload entity.Payload
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := payload.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		record, err := client.Update(c.Request().Context(), id, payload)
		if err != nil {
			return remoteFailure(c, err)
		}
		// Missing index is tolerated: the remote accepted the update
		st.Update(id, record)
		updated, ok := st.Get(id)
		if !ok {
			return c.JSON(http.StatusOK, record)
		}
		return c.JSON(http.StatusOK, updated)
	})
}

// applyListCommands turns list query params into store commands.
func applyListCommands(c echo.Context, st *store.Store) {
	params := c.QueryParams()
	if _, ok := params["search"]; ok {
		st.Search(c.QueryParam("search"))
	}
	switch c.QueryParam("sort") {
	case "title":
		st.SetSort(view.FieldTitle)
	case "price":
		st.SetSort(view.FieldPrice)
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		st.SetPageSize(v)
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		st.SetPage(v)
	}
	switch c.QueryParam("nav") {
	case "next":
		st.NextPage()
	case "prev":
		st.PrevPage()
	}
}

func listResponse(st *store.Store) echo.Map {
	res := st.View()
	return echo.Map{
		"products":   view.NewRows(res.Rows, config.AppConfig.PlaceholderThumb),
		"pagination": view.NewSummary(res),
		"search":     st.Term(),
		"sort":       st.Order(),
	}
}

// remoteFailure maps a failed boundary call: prior state stays untouched and
// the client is free to retry.
func remoteFailure(c echo.Context, err error) error {
	var remote *catalogService.RemoteError
	if errors.As(err, &remote) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": remote.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
