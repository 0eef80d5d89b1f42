package entity

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Category is the optional product category.
type Category struct {
	ID   int    `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Product is a catalog record as served by the remote catalog service.
// After normalization Images is always a slice, never a bare string.
type Product struct {
	ID          int       `json:"id" mapstructure:"id"`
	Title       string    `json:"title" mapstructure:"title"`
	Price       float64   `json:"price" mapstructure:"price"`
	Description string    `json:"description" mapstructure:"description"`
	Category    *Category `json:"category,omitempty" mapstructure:"category"`
	Images      []string  `json:"images" mapstructure:"images"`
}

// MalformedRecordError reports a raw record missing a required field.
type MalformedRecordError struct {
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at index %d: missing %s", e.Index, e.Field)
}

// ValidationError reports a user-submitted payload missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + " is required"
}

// requiredFields must be present (and non-nil) on every ingested record.
var requiredFields = []string{"id", "title", "price"}

// scalarImagesHook wraps a scalar images value into a one-element slice, so
// Images is always []string after decoding (the remote sometimes returns a
// bare string).
func scalarImagesHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice {
			return data, nil
		}
		if f.Kind() == reflect.Slice || f.Kind() == reflect.Array {
			return data, nil
		}
		if data == nil {
			return data, nil
		}
		return []interface{}{data}, nil
	}
}

// NormalizeOne decodes a single raw record into a Product. index is only used
// for error reporting.
func NormalizeOne(raw map[string]interface{}, index int) (Product, error) {
	for _, field := range requiredFields {
		if v, ok := raw[field]; !ok || v == nil {
			return Product{}, &MalformedRecordError{Index: index, Field: field}
		}
	}
	var p Product
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: scalarImagesHook(),
		Result:     &p,
	})
	if err != nil {
		return Product{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Product{}, fmt.Errorf("record %d: %w", index, err)
	}
	return p, nil
}

// Normalize decodes a list of raw records. Any malformed record fails the
// whole batch; no partial list is returned.
func Normalize(raw []map[string]interface{}) ([]Product, error) {
	products := make([]Product, 0, len(raw))
	for i, r := range raw {
		p, err := NormalizeOne(r, i)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Merge returns a copy of p with the patch shallow-merged over it: only the
// fields present in the patch change.
func (p Product) Merge(patch map[string]interface{}) (Product, error) {
	merged := p
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: scalarImagesHook(),
		Result:     &merged,
	})
	if err != nil {
		return p, err
	}
	if err := dec.Decode(patch); err != nil {
		return p, fmt.Errorf("merge: %w", err)
	}
	return merged, nil
}

// Payload is the create/update body sent to the remote catalog service.
type Payload struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CategoryID  int      `json:"categoryId"`
	Images      []string `json:"images"`
}

// Validate checks the required fields before any remote call is issued.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if p.Price <= 0 {
		return &ValidationError{Field: "price"}
	}
	return nil
}
