package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"catalog.GO/model/entity"
)

// SortField is a sortable column.
type SortField string

const (
	FieldTitle SortField = "title"
	FieldPrice SortField = "price"
)

// SortOrder is the active sort criterion.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Toggle returns the next criterion when field is activated: repeated
// activation of the same field flips ascending/descending, a different field
// starts ascending.
func (o SortOrder) Toggle(field SortField) SortOrder {
	asc := SortOrder(string(field) + "-asc")
	if o == asc {
		return SortOrder(string(field) + "-desc")
	}
	return asc
}

// Cursor is the visible slice of the view.
type Cursor struct {
	Page     int
	PageSize int
}

// Result is the computed view: the rows to display plus pagination state.
type Result struct {
	Rows       []entity.Product
	TotalCount int
	PageStart  int
	PageEnd    int
	HasPrev    bool
	HasNext    bool
}

// MaxPage returns the last valid page index for a total (at least 1).
func MaxPage(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	max := (total + pageSize - 1) / pageSize
	if max < 1 {
		return 1
	}
	return max
}

// Compute runs the view pipeline in fixed order: filter by term, stable sort
// by the active criterion, then slice by cursor. The input is never mutated.
func Compute(all []entity.Product, term string, order SortOrder, cur Cursor) Result {
	filtered := filter(all, term)
	sorted := applySort(filtered, order)

	total := len(sorted)
	start := (cur.Page - 1) * cur.PageSize
	end := start + cur.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pageStart := 0
	if total > 0 {
		pageStart = (cur.Page-1)*cur.PageSize + 1
	}

	return Result{
		Rows:       sorted[start:end],
		TotalCount: total,
		PageStart:  pageStart,
		PageEnd:    end,
		HasPrev:    cur.Page > 1,
		HasNext:    end < total,
	}
}

// filter keeps records whose title contains term, case-insensitively.
// Empty term is the identity.
func filter(all []entity.Product, term string) []entity.Product {
	if term == "" {
		return all
	}
	term = strings.ToLower(term)
	out := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), term) {
			out = append(out, p)
		}
	}
	return out
}

// applySort returns a stably sorted copy. SortNone leaves the filtered order
// unchanged.
func applySort(items []entity.Product, order SortOrder) []entity.Product {
	if order == SortNone {
		return items
	}
	out := make([]entity.Product, len(items))
	copy(out, items)
	// collate.Collator is not safe for concurrent use
	col := collate.New(language.Und)
	switch order {
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Title, out[j].Title) < 0 })
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[j].Title, out[i].Title) < 0 })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price < out[i].Price })
	}
	return out
}

// Row is the renderable view-model for a table row.
type Row struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	CategoryName string `json:"categoryName"`
	ImageURL     string `json:"imageUrl"`
}

// Detail is the renderable view-model for a single product page.
type Detail struct {
	Row
	Description string `json:"description"`
}

// Summary is the pagination summary shown next to the table.
type Summary struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Total   int  `json:"total"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// NewRow builds the row view-model: price to 2 decimals, "N/A" for a missing
// category, first image or the placeholder.
func NewRow(p entity.Product, placeholder string) Row {
	category := "N/A"
	if p.Category != nil && p.Category.Name != "" {
		category = p.Category.Name
	}
	image := placeholder
	if len(p.Images) > 0 && p.Images[0] != "" {
		image = p.Images[0]
	}
	return Row{
		ID:           p.ID,
		Title:        p.Title,
		Price:        fmt.Sprintf("%.2f", p.Price),
		CategoryName: category,
		ImageURL:     image,
	}
}

// NewDetail builds the detail view-model.
func NewDetail(p entity.Product, placeholder string) Detail {
	description := p.Description
	if description == "" {
		description = "No description"
	}
	return Detail{Row: NewRow(p, placeholder), Description: description}
}

// NewRows maps a result page to row view-models.
func NewRows(rows []entity.Product, placeholder string) []Row {
	out := make([]Row, 0, len(rows))
	for _, p := range rows {
		out = append(out, NewRow(p, placeholder))
	}
	return out
}

// NewSummary maps a result to the pagination summary.
func NewSummary(r Result) Summary {
	return Summary{
		From:    r.PageStart,
		To:      r.PageEnd,
		Total:   r.TotalCount,
		HasPrev: r.HasPrev,
		HasNext: r.HasNext,
	}
}
