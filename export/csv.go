package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog.GO/model/entity"
)

// Header is the fixed CSV header line.
const Header = "ID,Name,Price,Category,Description"

// descriptionLimit caps the exported description length (in characters).
const descriptionLimit = 100

// Encode serializes the given rows (the currently visible page, not the full
// filtered set) into CSV text: id and price bare, string fields quoted with
// internal quotes doubled. Empty input produces the header only.
func Encode(rows []entity.Product) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Header)
	for _, p := range rows {
		category := "N/A"
		if p.Category != nil && p.Category.Name != "" {
			category = p.Category.Name
		}
		fields := []string{
			strconv.Itoa(p.ID),
			quote(p.Title),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			quote(category),
			quote(truncate(p.Description, descriptionLimit)),
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// FileName returns the download name: products_{unix-epoch-ms}.csv.
func FileName() string {
	return fmt.Sprintf("products_%d.csv", time.Now().UnixMilli())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
