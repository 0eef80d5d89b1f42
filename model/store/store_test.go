package store

import (
	"errors"
	"reflect"
	"testing"

	"catalog.GO/model/entity"
	"catalog.GO/view"
)

func raw(id int, title string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"id":     float64(id),
		"title":  title,
		"price":  price,
		"images": []interface{}{"https://img/" + title + ".png"},
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(10)
	err := s.Load([]map[string]interface{}{
		raw(1, "Wireless Mouse", 19.99),
		raw(2, "USB Cable", 4.5),
		raw(3, "Monitor", 120),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func viewIDs(s *Store) []int {
	res := s.View()
	out := make([]int, len(res.Rows))
	for i, p := range res.Rows {
		out[i] = p.ID
	}
	return out
}

func TestLoad_MalformedFailsWhole(t *testing.T) {
	s := NewStore(10)
	if err := s.Load([]map[string]interface{}{raw(1, "OK", 1)}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	bad := raw(2, "Bad", 2)
	delete(bad, "price")
	err := s.Load([]map[string]interface{}{raw(3, "New", 3), bad})
	var malformed *entity.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedRecordError", err)
	}
	// Prior state untouched
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 (failed load must not replace state)", s.Len())
	}
	if ids := viewIDs(s); len(ids) != 1 || ids[0] != 1 {
		t.Errorf("view = %v, want [1]", ids)
	}
}

func TestCreate_Prepends(t *testing.T) {
	s := loadedStore(t)
	s.Create(entity.Product{ID: 99, Title: "Keyboard", Price: 30, Images: []string{}})
	snap := s.Snapshot()
	if snap[0].ID != 99 {
		t.Errorf("Snapshot[0].ID = %d, want 99", snap[0].ID)
	}
	if len(snap) != 4 {
		t.Errorf("Len = %d, want 4", len(snap))
	}
}

func TestUpdate_MergesOnlyPatchedFields(t *testing.T) {
	s := loadedStore(t)
	before := s.Snapshot()
	ok := s.Update(2, map[string]interface{}{"price": 5.0})
	if !ok {
		t.Fatal("Update: want true")
	}
	after := s.Snapshot()
	for i := range after {
		if after[i].ID == 2 {
			if after[i].Price != 5.0 {
				t.Errorf("price = %v, want 5.0", after[i].Price)
			}
			if after[i].Title != "USB Cable" || len(after[i].Images) != 1 {
				t.Errorf("unpatched fields changed: %+v", after[i])
			}
			continue
		}
		if !reflect.DeepEqual(after[i], before[i]) {
			t.Errorf("record %d changed: %+v vs %+v", after[i].ID, after[i], before[i])
		}
	}
}

func TestUpdate_MissingID_NoOp(t *testing.T) {
	s := loadedStore(t)
	if s.Update(1234, map[string]interface{}{"price": 1.0}) {
		t.Error("Update of missing id: want false")
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestSearch_ResetsPage(t *testing.T) {
	s := loadedStore(t)
	s.SetPageSize(1)
	s.NextPage()
	if s.Cursor().Page != 2 {
		t.Fatalf("page = %d, want 2", s.Cursor().Page)
	}
	s.Search("USB")
	if s.Cursor().Page != 1 {
		t.Errorf("page after search = %d, want 1", s.Cursor().Page)
	}
	if ids := viewIDs(s); len(ids) != 1 || ids[0] != 2 {
		t.Errorf("view = %v, want [2]", ids)
	}
	s.Search("")
	if s.View().TotalCount != 3 {
		t.Errorf("cleared search TotalCount = %d, want 3", s.View().TotalCount)
	}
}

func TestSetSort_ToggleAndPersistAcrossFilter(t *testing.T) {
	s := loadedStore(t)
	s.SetSort(view.FieldPrice)
	if got := viewIDs(s); !reflect.DeepEqual(got, []int{2, 1, 3}) {
		t.Errorf("price-asc view = %v, want [2 1 3]", got)
	}
	s.SetSort(view.FieldPrice)
	if got := viewIDs(s); !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Errorf("price-desc view = %v, want [3 1 2]", got)
	}
	// Last chosen criterion keeps applying across filter changes
	s.Search("o")
	if s.Order() != view.SortPriceDesc {
		t.Errorf("order after filter = %s, want price-desc", s.Order())
	}
	if got := viewIDs(s); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("filtered sorted view = %v, want [3 1]", got)
	}
}

func TestSetPageSize_ResetsPage(t *testing.T) {
	s := loadedStore(t)
	s.SetPageSize(1)
	s.NextPage()
	s.SetPageSize(2)
	if s.Cursor().Page != 1 {
		t.Errorf("page = %d, want 1", s.Cursor().Page)
	}
	if s.Cursor().PageSize != 2 {
		t.Errorf("pageSize = %d, want 2", s.Cursor().PageSize)
	}
}

func TestPageNavigation_Guarded(t *testing.T) {
	s := loadedStore(t)
	s.SetPageSize(2)
	if s.PrevPage() {
		t.Error("PrevPage on page 1: want false")
	}
	if !s.NextPage() {
		t.Error("NextPage to page 2: want true")
	}
	if s.NextPage() {
		t.Error("NextPage past last page: want false")
	}
	if s.Cursor().Page != 2 {
		t.Errorf("page = %d, want 2", s.Cursor().Page)
	}
	s.SetPage(99)
	if s.Cursor().Page != 2 {
		t.Errorf("SetPage out of range moved cursor to %d", s.Cursor().Page)
	}
}

func TestGet(t *testing.T) {
	s := loadedStore(t)
	p, ok := s.Get(2)
	if !ok || p.Title != "USB Cable" {
		t.Errorf("Get(2) = %+v ok=%v", p, ok)
	}
	if _, ok := s.Get(555); ok {
		t.Error("Get(555): want false")
	}
}
