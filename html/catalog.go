package html

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"catalog.GO/api"
	"catalog.GO/config"
	"catalog.GO/html/parts"
	"catalog.GO/model/entity"
	"catalog.GO/model/store"
	catalogService "catalog.GO/service/catalog"
	"catalog.GO/view"
)

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

func init() {
	api.RegisterHTMLModule(RegisterCatalogHTMLRoutes)
}

// productForm mirrors the edit/create inputs (single image URL field).
type productForm struct {
	Title       string  `form:"title"`
	Price       float64 `form:"price"`
	Description string  `form:"description"`
	CategoryID  int     `form:"category_id"`
	Image       string  `form:"image"`
}

func (f productForm) payload() entity.Payload {
	p := entity.Payload{
		Title:       f.Title,
		Price:       f.Price,
		Description: f.Description,
		CategoryID:  f.CategoryID,
	}
	if f.Image != "" {
		p.Images = []string{f.Image}
	}
	return p
}

// RegisterCatalogHTMLRoutes registers the server-rendered catalog table and
// product detail pages. Query params on "/" are the user input events:
// search text, sort-column click, page-size change, page navigation.
func RegisterCatalogHTMLRoutes(e *echo.Echo, st *store.Store, client *catalogService.Client) {
	e.GET("/", func(c echo.Context) error {
		applyCommands(c, st)
		res := st.View()
		css, _ := parts.GetCriticalCSS()
		return c.Render(http.StatusOK, "catalog.html", map[string]interface{}{
			"AppName":    config.AppConfig.AppName,
			"Rows":       view.NewRows(res.Rows, config.AppConfig.PlaceholderThumb),
			"Summary":    view.NewSummary(res),
			"Search":     st.Term(),
			"Sort":       string(st.Order()),
			"PageSize":   st.Cursor().PageSize,
			"LoadFailed": st.LoadError() != nil,
			"CSS":        template.CSS(css),
		})
	})

	e.GET("/product/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid product id")
		}
		p, ok := st.Get(id)
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		css, _ := parts.GetCriticalCSS()
		return c.Render(http.StatusOK, "product.html", map[string]interface{}{
			"AppName": config.AppConfig.AppName,
			"Product": view.NewDetail(p, config.AppConfig.PlaceholderImage),
			"CSS":     template.CSS(css),
		})
	})

	e.POST("/create", func(c echo.Context) error {
		var form productForm
		if err := c.Bind(&form); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		payload := form.payload()
		if err := payload.Validate(); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		record, err := client.Create(c.Request().Context(), payload)
		if err != nil {
			log.Println("Create error:", err)
			return c.String(http.StatusBadGateway, "Failed to create product. Please try again.")
		}
		created, err := entity.NormalizeOne(record, 0)
		if err != nil {
			return c.String(http.StatusBadGateway, err.Error())
		}
		st.Create(created)
		return c.Redirect(http.StatusSeeOther, "/")
	})

	e.POST("/product/:id/edit", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid product id")
		}
		var form productForm
		if err := c.Bind(&form); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		payload := form.payload()
		if err := payload.Validate(); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		record, err := client.Update(c.Request().Context(), id, payload)
		if err != nil {
			log.Println("Update error:", err)
			return c.String(http.StatusBadGateway, "Failed to update product. Please try again.")
		}
		st.Update(id, record)
		return c.Redirect(http.StatusSeeOther, "/product/"+strconv.Itoa(id))
	})
}

func applyCommands(c echo.Context, st *store.Store) {
	if _, ok := c.QueryParams()["search"]; ok {
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
	switch c.QueryParam("nav") {
	case "next":
		st.NextPage()
	case "prev":
		st.PrevPage()
	}
}
