package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"catalog.GO/config"
	"catalog.GO/graphql"
	gqlmodels "catalog.GO/graphql/models"
	"catalog.GO/graphql/registry"
	"catalog.GO/model/entity"
	"catalog.GO/model/store"
	"catalog.GO/view"
)

// RootResolver is the root for graphql-go. Queries read a point-in-time
// snapshot of the store and never change its filter/sort/page state.
type RootResolver struct {
	Store *store.Store
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{store: r.Store}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	store *store.Store
}

// ProductsArgs matches the products query arguments (defaults in schema: pageSize=10, currentPage=1).
type ProductsArgs struct {
	Search      *string
	PageSize    int32
	CurrentPage int32
	Sort        *string
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductPage, error) {
	ps, cp := int(args.PageSize), int(args.CurrentPage)
	if ps <= 0 {
		ps = config.AppConfig.DefaultPageSize
	}
	if cp <= 0 {
		cp = 1
	}
	term := ""
	if args.Search != nil {
		term = *args.Search
	}
	order := view.SortNone
	if args.Sort != nil {
		order = parseOrder(*args.Sort)
	}

	res := view.Compute(r.store.Snapshot(), term, order, view.Cursor{Page: cp, PageSize: ps})
	items := make([]*gqlmodels.Product, 0, len(res.Rows))
	for _, p := range res.Rows {
		items = append(items, toGQLProduct(p))
	}
	return &gqlmodels.ProductPage{
		Items:      items,
		TotalCount: int32(res.TotalCount),
		PageInfo: &gqlmodels.PageInfo{
			PageSize:    int32(ps),
			CurrentPage: int32(cp),
			TotalPages:  int32(view.MaxPage(res.TotalCount, ps)),
			HasPrev:     res.HasPrev,
			HasNext:     res.HasNext,
		},
	}, nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID int32
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	p, ok := r.store.Get(int(args.ID))
	if !ok {
		return nil, nil
	}
	return toGQLProduct(p), nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func toGQLProduct(p entity.Product) *gqlmodels.Product {
	d := view.NewDetail(p, config.AppConfig.PlaceholderThumb)
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &gqlmodels.Product{
		ID:           int32(p.ID),
		Title:        p.Title,
		Price:        p.Price,
		Description:  d.Description,
		CategoryName: d.CategoryName,
		ImageURL:     d.ImageURL,
		Images:       images,
	}
}

func parseOrder(s string) view.SortOrder {
	switch view.SortOrder(s) {
	case view.SortTitleAsc, view.SortTitleDesc, view.SortPriceAsc, view.SortPriceDesc:
		return view.SortOrder(s)
	}
	return view.SortNone
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(st *store.Store) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{Store: st}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
