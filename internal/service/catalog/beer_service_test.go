package catalog

import (
	"testing"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/storage/memory"
)

func newBeerServiceForTest(t *testing.T) (*BeerService, domain.BeerType, domain.Brand) {
	t.Helper()

	types := memory.NewBeerTypeRepository()
	brands := memory.NewBrandRepository()
	beers := memory.NewBeerRepository()

	beerType, err := types.Add(domain.BeerType{TypeName: "IPA"})
	if err != nil {
		t.Fatalf("seed type: %v", err)
	}
	brand, err := brands.Add(domain.Brand{BrandName: "Esbjerg Bryghus"})
	if err != nil {
		t.Fatalf("seed brand: %v", err)
	}

	return NewBeerService(beers, types, brands, nil, nil), beerType, brand
}

func validBeer(typeID, brandID int64) *domain.Beer {
	return &domain.Beer{
		Name:        "West Coast IPA",
		Description: "Citrus forward",
		PriceMinor:  6500,
		Percentage:  6.2,
		IBU:         60,
		EBC:         12,
		Stock:       10,
		TypeID:      typeID,
		BrandID:     brandID,
	}
}

func TestBeerServiceCreate(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	created, err := svc.Create(validBeer(beerType.ID, brand.ID))
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
	if fetched.Name != "West Coast IPA" {
		t.Errorf("unexpected name %q", fetched.Name)
	}
}

func TestBeerServiceCreateRejectsInvalid(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	beer := validBeer(beerType.ID, brand.ID)
	beer.PriceMinor = 0

	if _, err := svc.Create(beer); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBeerServiceCreateRejectsNil(t *testing.T) {
	svc, _, _ := newBeerServiceForTest(t)

	if _, err := svc.Create(nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for nil beer, got %v", err)
	}
}

func TestBeerServiceCreateUnknownCategory(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	beer := validBeer(beerType.ID+100, brand.ID)
	if _, err := svc.Create(beer); err != domain.ErrTypeNotFound {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}

	beer = validBeer(beerType.ID, brand.ID+100)
	if _, err := svc.Create(beer); err != domain.ErrBrandNotFound {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
}

func TestBeerServiceGetRejectsNonPositiveID(t *testing.T) {
	svc, _, _ := newBeerServiceForTest(t)

	if _, err := svc.Get(0); err != domain.ErrIncorrectID {
		t.Fatalf("expected ErrIncorrectID, got %v", err)
	}
	if _, err := svc.Get(-5); err != domain.ErrIncorrectID {
		t.Fatalf("expected ErrIncorrectID, got %v", err)
	}
}

func TestBeerServiceGetNotFound(t *testing.T) {
	svc, _, _ := newBeerServiceForTest(t)

	if _, err := svc.Get(42); err != domain.ErrBeerNotFound {
		t.Fatalf("expected ErrBeerNotFound, got %v", err)
	}
}

func TestBeerServiceUpdate(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	created, err := svc.Create(validBeer(beerType.ID, brand.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Stock = 25
	updated, err := svc.Update(&created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 25 {
		t.Errorf("expected stock 25, got %d", updated.Stock)
	}
}

func TestBeerServiceUpdateUnknownBeer(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	beer := validBeer(beerType.ID, brand.ID)
	beer.ID = 99

	if _, err := svc.Update(beer); err != domain.ErrBeerNotFound {
		t.Fatalf("expected ErrBeerNotFound, got %v", err)
	}
}

func TestBeerServiceDelete(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	created, err := svc.Create(validBeer(beerType.ID, brand.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("expected deleted ID %d, got %d", created.ID, deleted.ID)
	}

	if _, err := svc.Get(created.ID); err != domain.ErrBeerNotFound {
		t.Fatalf("expected ErrBeerNotFound after delete, got %v", err)
	}
}

func TestBeerServiceListSortsAndPages(t *testing.T) {
	svc, beerType, brand := newBeerServiceForTest(t)

	names := []string{"Amber", "Citra", "Bock"}
	ibus := []float64{30, 70, 20}
	for i, name := range names {
		beer := validBeer(beerType.ID, brand.ID)
		beer.Name = name
		beer.IBU = ibus[i]
		if _, err := svc.Create(beer); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	page, err := svc.List(domain.Filter{SortKey: domain.SortKeyIBU})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalItems != 3 {
		t.Fatalf("expected 3 total, got %d", page.TotalItems)
	}
	if page.Items[0].Name != "Bock" || page.Items[2].Name != "Citra" {
		t.Errorf("unexpected IBU order: %v", page.Items)
	}

	page, err = svc.List(domain.Filter{CurrentPage: 2, ItemsPerPage: 2, SortKey: domain.SortKeyAlphabetical})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Citra" {
		t.Errorf("unexpected second page: %v", page.Items)
	}
}
