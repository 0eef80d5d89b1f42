package models

// Product is the GraphQL view of a catalog record. Display fallbacks
// (categoryName, imageUrl, description) are applied at construction.
type Product struct {
	ID           int32
	Title        string
	Price        float64
	Description  string
	CategoryName string
	ImageURL     string
	Images       []string
}

// PageInfo describes the window position inside the filtered set.
type PageInfo struct {
	PageSize    int32
	CurrentPage int32
	TotalPages  int32
	HasPrev     bool
	HasNext     bool
}

// ProductPage is one page of the filtered, sorted catalog.
type ProductPage struct {
	Items      []*Product
	TotalCount int32
	PageInfo   *PageInfo
}
