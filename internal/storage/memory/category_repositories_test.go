package memory

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

func TestBeerTypeRepository_Flow(t *testing.T) {
	repo := NewBeerTypeRepository()

	ipa, err := repo.Add(domain.BeerType{TypeName: "IPA"})
	if err != nil {
		t.Fatalf("add type: %v", err)
	}
	if _, err := repo.Add(domain.BeerType{TypeName: "Stout"}); err != nil {
		t.Fatalf("add second type: %v", err)
	}

	listed, err := repo.List(domain.Filter{SortKey: domain.SortKeyAlphabetical})
	if err != nil {
		t.Fatalf("list types: %v", err)
	}
	if listed.TotalItems != 2 || listed.Items[0].TypeName != "IPA" {
		t.Fatalf("unexpected type list: %+v", listed)
	}

	ipa.TypeName = "India Pale Ale"
	if _, err := repo.Update(ipa); err != nil {
		t.Fatalf("update type: %v", err)
	}

	if _, err := repo.Delete(ipa.ID); err != nil {
		t.Fatalf("delete type: %v", err)
	}
	if _, err := repo.Get(ipa.ID); !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound after delete, got %v", err)
	}
	if _, err := repo.Update(domain.BeerType{ID: 987654, TypeName: "Ghost"}); !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound on update missing, got %v", err)
	}
}

func TestBrandRepository_Flow(t *testing.T) {
	repo := NewBrandRepository()

	brand, err := repo.Add(domain.Brand{BrandName: "Esbjerg Bryghus"})
	if err != nil {
		t.Fatalf("add brand: %v", err)
	}

	found, err := repo.List(domain.Filter{Name: "esbjerg"})
	if err != nil {
		t.Fatalf("list brands by name: %v", err)
	}
	if found.TotalItems != 1 || found.Items[0].ID != brand.ID {
		t.Fatalf("unexpected brand search: %+v", found)
	}

	// Фильтр по типу на сущности без типа исключает всё.
	none, err := repo.List(domain.Filter{BeerTypeID: 1})
	if err != nil {
		t.Fatalf("list brands by type: %v", err)
	}
	if none.TotalItems != 0 {
		t.Fatalf("expected empty selection for type filter, got %+v", none)
	}

	brand.BrandName = "Esbjerg Bryghus A/S"
	if _, err := repo.Update(brand); err != nil {
		t.Fatalf("update brand: %v", err)
	}

	deleted, err := repo.Delete(brand.ID)
	if err != nil {
		t.Fatalf("delete brand: %v", err)
	}
	if deleted.BrandName != "Esbjerg Bryghus A/S" {
		t.Fatalf("unexpected deleted brand: %+v", deleted)
	}
	if _, err := repo.Get(brand.ID); !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound after delete, got %v", err)
	}
}
