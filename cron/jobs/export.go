package jobs

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"catalog.GO/config"
	"catalog.GO/export"
	"catalog.GO/model/entity"
	catalogService "catalog.GO/service/catalog"
)

// CatalogExportJob fetches the full catalog from the remote service and
// writes a CSV snapshot into EXPORT_DIR. Optional first arg overrides the
// output directory (used by the CLI).
func CatalogExportJob(args ...string) {
	dir := config.GetEnv("EXPORT_DIR", "var/export")
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}

	client := catalogService.NewClient(config.LoadRemoteConfig())
	raw, err := client.List(context.Background())
	if err != nil {
		log.Printf("catalog export: fetch failed: %v", err)
		return
	}
	products, err := entity.Normalize(raw)
	if err != nil {
		log.Printf("catalog export: malformed response: %v", err)
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("catalog export: %v", err)
		return
	}
	path := filepath.Join(dir, export.FileName())
	if err := os.WriteFile(path, []byte(export.Encode(products)), 0o644); err != nil {
		log.Printf("catalog export: %v", err)
		return
	}
	log.Printf("catalog export: wrote %d products to %s", len(products), path)
}
