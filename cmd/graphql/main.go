// Standalone GraphQL server — run with: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	graphqlApi "catalog.GO/api/graphql"
	"catalog.GO/config"
	"catalog.GO/model/store"
	catalogService "catalog.GO/service/catalog"
)

func main() {
	_ = godotenv.Load()
	config.LoadAppConfig()

	client := catalogService.NewClient(config.LoadRemoteConfig())
	st := store.NewStore(config.AppConfig.DefaultPageSize)
	raw, err := client.List(context.Background())
	if err != nil {
		log.Printf("initial load failed: %v", err)
		st.SetLoadError(err)
	} else if err := st.Load(raw); err != nil {
		log.Printf("initial load failed: %v", err)
		st.SetLoadError(err)
	}

	e := echo.New()
	graphqlApi.RegisterGraphQLRoutes(e, st)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("Catalog GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
