package postgres

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

func TestCustomerRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	customer, err := repo.Add(domain.Customer{
		FirstName:   "Lars",
		LastName:    "Jensen",
		Email:       "lars.jensen@example.dk",
		PhoneNumber: "+4520304050",
		StreetName:  "Strandvejen 12",
		PostalCode:  6700,
		CityName:    "Esbjerg",
	})
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	if customer.ID == 0 {
		t.Fatal("expected assigned customer id")
	}

	got, err := repo.Get(customer.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Email != "lars.jensen@example.dk" || got.PostalCode != 6700 {
		t.Fatalf("unexpected customer payload: %+v", got)
	}

	got.CityName = "Aarhus"
	updated, err := repo.Update(got)
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.CityName != "Aarhus" {
		t.Fatalf("unexpected city after update: %q", updated.CityName)
	}

	if _, err := repo.Get(987654); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	missing := got
	missing.ID = 987654
	if _, err := repo.Update(missing); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound on update missing, got %v", err)
	}
}

func TestUserRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewUserRepository(store)

	user, err := repo.Add(domain.User{
		Username:     "beerlover99",
		PasswordHash: []byte{1, 2, 3},
		Salt:         []byte{4, 5, 6},
		Role:         "Customer",
	})
	if err != nil {
		t.Fatalf("add user: %v", err)
	}

	// Уникальность имени не зависит от регистра.
	if _, err := repo.Add(domain.User{
		Username:     "BeerLover99",
		PasswordHash: []byte{1},
		Salt:         []byte{2},
		Role:         "Customer",
	}); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	got, err := repo.Get(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Username != "beerlover99" || len(got.PasswordHash) != 3 {
		t.Fatalf("unexpected user payload: %+v", got)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user, got %d", len(all))
	}

	got.Role = "Admin"
	if _, err := repo.Update(got); err != nil {
		t.Fatalf("update user: %v", err)
	}

	deleted, err := repo.Delete(user.ID)
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if deleted.Role != "Admin" {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}
	if _, err := repo.Get(user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}
