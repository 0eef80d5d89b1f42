package main

import (
	"context"
	"html/template"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"catalog.GO/api"
	graphqlApi "catalog.GO/api/graphql"
	_ "catalog.GO/api/image"
	_ "catalog.GO/api/product"
	"catalog.GO/config"
	_ "catalog.GO/custom"
	catalogHTML "catalog.GO/html"
	"catalog.GO/model/store"
	catalogService "catalog.GO/service/catalog"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	client := catalogService.NewClient(config.LoadRemoteConfig())
	st := store.NewStore(config.AppConfig.DefaultPageSize)

	// Initial catalog load. The server still comes up on failure; the table
	// shows the error state and /api/products/reload retries.
	raw, err := client.List(context.Background())
	if err != nil {
		log.Printf("initial catalog load failed: %v", err)
		st.SetLoadError(err)
	} else if err := st.Load(raw); err != nil {
		log.Printf("initial catalog load failed: %v", err)
		st.SetLoadError(err)
	} else {
		log.Printf("loaded %d products from %s", st.Len(), config.LoadRemoteConfig().BaseURL)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			log.Printf("Request duration: %d ms", duration)
			return err
		}
	})

	// Register the template renderer
	t := &catalogHTML.Template{
		Templates: template.Must(template.ParseGlob("html/*.html")),
	}
	e.Renderer = t

	for _, tmpl := range t.Templates.Templates() {
		log.Println("Loaded template:", tmpl.Name())
	}

	apiGroup := e.Group("/api")
	api.ApplyModules(apiGroup, st, client)
	api.ApplyRoutes(e, st, client)
	graphqlApi.RegisterGraphQLRoutes(e, st)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	figure.NewFigure("Catalog ->", fonts[rand.Intn(len(fonts))], true).Print()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
