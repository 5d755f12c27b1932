package store

import (
	"errors"
	"testing"
	"time"

	"catalog-service/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Profile{}, &model.Product{}, &model.Ingredient{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func str(s string) *string {
	return &s
}

func TestProductCreateAndGet(t *testing.T) {
	s := NewProductStore(testDB(t))

	p := model.Product{
		Name:      "Chateau Test",
		Vintage:   str("2019"),
		SKU:       str("SKU-001"),
		Organic:   true,
		CreatedBy: "owner-1",
	}
	if err := s.Create(&p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected product to be assigned an ID")
	}

	got, err := s.Get(p.ID, "owner-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Chateau Test" {
		t.Errorf("expected name %q, got %q", "Chateau Test", got.Name)
	}
	if got.Vintage == nil || *got.Vintage != "2019" {
		t.Errorf("expected vintage 2019, got %v", got.Vintage)
	}
	if !got.Organic {
		t.Error("expected organic flag to persist")
	}
}

func TestProductOwnerScoping(t *testing.T) {
	s := NewProductStore(testDB(t))

	p := model.Product{Name: "Private Wine", CreatedBy: "owner-1"}
	if err := s.Create(&p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := s.Get(p.ID, "owner-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := s.Update(p.ID, "owner-2", map[string]interface{}{"name": "Stolen"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on foreign update, got %v", err)
	}
	if err := s.Delete(p.ID, "owner-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on foreign delete, got %v", err)
	}

	// The record is untouched for its real owner.
	got, err := s.Get(p.ID, "owner-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Private Wine" {
		t.Errorf("expected name unchanged, got %q", got.Name)
	}
}

func TestProductListOrdering(t *testing.T) {
	s := NewProductStore(testDB(t))

	for _, name := range []string{"Zinfandel", "Barolo", "Merlot"} {
		if err := s.Create(&model.Product{Name: name, CreatedBy: "owner-1"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := s.Create(&model.Product{Name: "Aligote", CreatedBy: "owner-2"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	products, err := s.List("owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	want := []string{"Barolo", "Merlot", "Zinfandel"}
	for i, p := range products {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], p.Name)
		}
	}
}

func TestProductSKUConflict(t *testing.T) {
	s := NewProductStore(testDB(t))

	if err := s.Create(&model.Product{Name: "First", SKU: str("DUP-1"), CreatedBy: "owner-1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := s.Create(&model.Product{Name: "Second", SKU: str("DUP-1"), CreatedBy: "owner-1"})
	if !IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	other := model.Product{Name: "Other", SKU: str("OTHER-1"), CreatedBy: "owner-1"}
	if err := s.Create(&other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Update(other.ID, "owner-1", map[string]interface{}{"sku": str("DUP-1")}); !IsConflict(err) {
		t.Fatalf("expected conflict on update to duplicate SKU, got %v", err)
	}

	// Updating a product to its own SKU is not a conflict.
	if _, err := s.Update(other.ID, "owner-1", map[string]interface{}{"sku": str("OTHER-1")}); err != nil {
		t.Fatalf("expected self-SKU update to succeed, got %v", err)
	}
}

func TestProductPartialUpdate(t *testing.T) {
	s := NewProductStore(testDB(t))

	p := model.Product{
		Name:      "Original",
		Brand:     str("Old Brand"),
		Country:   str("France"),
		CreatedBy: "owner-1",
	}
	if err := s.Create(&p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := s.Update(p.ID, "owner-1", map[string]interface{}{
		"brand":   str("New Brand"),
		"country": (*string)(nil),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Original" {
		t.Errorf("untouched field changed: %q", updated.Name)
	}
	if updated.Brand == nil || *updated.Brand != "New Brand" {
		t.Errorf("expected brand updated, got %v", updated.Brand)
	}
	if updated.Country != nil {
		t.Errorf("expected country cleared, got %v", *updated.Country)
	}
}

func TestProductEmptyUpdateTouchesRow(t *testing.T) {
	s := NewProductStore(testDB(t))

	p := model.Product{Name: "Touch Me", CreatedBy: "owner-1"}
	if err := s.Create(&p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := p.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	updated, err := s.Update(p.ID, "owner-1", map[string]interface{}{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("expected updated_at to advance on empty payload")
	}
}

func TestProductDelete(t *testing.T) {
	s := NewProductStore(testDB(t))

	p := model.Product{Name: "Short Lived", CreatedBy: "owner-1"}
	if err := s.Create(&p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.Delete(p.ID, "owner-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(p.ID, "owner-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(p.ID, "owner-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
