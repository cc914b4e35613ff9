package catalog

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/storage/memory"
)

func TestTypeServiceCreateAndGet(t *testing.T) {
	svc := NewTypeService(memory.NewBeerTypeRepository(), nil, nil)

	created, err := svc.Create(&domain.BeerType{TypeName: "IPA"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.TypeName != "IPA" {
		t.Errorf("unexpected name %q", fetched.TypeName)
	}
}

func TestTypeServiceRejectsInvalid(t *testing.T) {
	svc := NewTypeService(memory.NewBeerTypeRepository(), nil, nil)

	if _, err := svc.Create(&domain.BeerType{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Create(nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for nil type, got %v", err)
	}
	if _, err := svc.Get(0); !errors.Is(err, domain.ErrIncorrectID) {
		t.Fatalf("expected ErrIncorrectID, got %v", err)
	}
	if _, err := svc.Delete(-1); !errors.Is(err, domain.ErrIncorrectID) {
		t.Fatalf("expected ErrIncorrectID on delete, got %v", err)
	}
}

func TestTypeServiceUpdate(t *testing.T) {
	svc := NewTypeService(memory.NewBeerTypeRepository(), nil, nil)

	created, err := svc.Create(&domain.BeerType{TypeName: "IPA"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.TypeName = "India Pale Ale"
	updated, err := svc.Update(&created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TypeName != "India Pale Ale" {
		t.Errorf("unexpected name after update %q", updated.TypeName)
	}

	if _, err := svc.Update(&domain.BeerType{ID: 987654, TypeName: "Ghost"}); !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
	if _, err := svc.Update(&domain.BeerType{TypeName: "No ID"}); !errors.Is(err, domain.ErrIncorrectID) {
		t.Fatalf("expected ErrIncorrectID for zero ID, got %v", err)
	}
}

func TestTypeServiceList(t *testing.T) {
	svc := NewTypeService(memory.NewBeerTypeRepository(), nil, nil)

	for _, name := range []string{"Stout", "IPA", "Pilsner"} {
		if _, err := svc.Create(&domain.BeerType{TypeName: name}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	listed, err := svc.List(domain.Filter{SortKey: domain.SortKeyAlphabetical})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed.TotalItems != 3 || listed.Items[0].TypeName != "IPA" {
		t.Fatalf("unexpected list: %+v", listed)
	}
}

func TestBrandServiceFlow(t *testing.T) {
	svc := NewBrandService(memory.NewBrandRepository(), nil, nil)

	created, err := svc.Create(&domain.Brand{BrandName: "Esbjerg Bryghus"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.List(domain.Filter{Name: "esbjerg"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if found.TotalItems != 1 || found.Items[0].ID != created.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}

	created.BrandName = "Esbjerg Bryghus A/S"
	if _, err := svc.Update(&created); err != nil {
		t.Fatalf("update: %v", err)
	}

	deleted, err := svc.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.BrandName != "Esbjerg Bryghus A/S" {
		t.Fatalf("unexpected deleted brand: %+v", deleted)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound after delete, got %v", err)
	}
}

func TestBrandServiceRejectsInvalid(t *testing.T) {
	svc := NewBrandService(memory.NewBrandRepository(), nil, nil)

	if _, err := svc.Create(&domain.Brand{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Get(0); !errors.Is(err, domain.ErrIncorrectID) {
		t.Fatalf("expected ErrIncorrectID, got %v", err)
	}
}
