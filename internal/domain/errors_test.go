package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "not found error",
			err:  ErrBeerNotFound,
			want: KindNotFound,
		},
		{
			name: "wrapped not found error",
			err:  fmt.Errorf("load beer: %w", ErrBeerNotFound),
			want: KindNotFound,
		},
		{
			name: "double wrapped insufficient stock",
			err:  fmt.Errorf("place order: %w", fmt.Errorf("reserve: %w", ErrInsufficientStock)),
			want: KindInsufficientStock,
		},
		{
			name: "joined validation error",
			err:  errors.Join(NewError(KindValidation, "Price must be higher than zero"), errors.New("additional context")),
			want: KindValidation,
		},
		{
			name: "plain error",
			err:  errors.New("something broke"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KindOf(tt.err)
			if got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		want bool
	}{
		{
			name: "matching kind",
			err:  ErrIncorrectID,
			kind: KindInvalidArgument,
			want: true,
		},
		{
			name: "matching kind through wrapping",
			err:  fmt.Errorf("finalize order: %w", ErrOrderNotFound),
			kind: KindNotFound,
			want: true,
		},
		{
			name: "other kind",
			err:  ErrOrderNotFound,
			kind: KindConflict,
			want: false,
		},
		{
			name: "foreign error",
			err:  ErrOutboxPublish,
			kind: KindNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			kind: KindNotFound,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKind(tt.err, tt.kind)
			if got != tt.want {
				t.Errorf("IsKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
		want bool
	}{
		{
			name: "IsInvalidArgument on customer null",
			pred: IsInvalidArgument,
			err:  ErrCustomerNull,
			want: true,
		},
		{
			name: "IsValidation on wrapped validation error",
			pred: IsValidation,
			err:  fmt.Errorf("validate beer: %w", NewError(KindValidation, "EBC must be betweeen 0-80")),
			want: true,
		},
		{
			name: "IsInsufficientStock on stock error",
			pred: IsInsufficientStock,
			err:  ErrInsufficientStock,
			want: true,
		},
		{
			name: "IsNotFound on wrapped customer not found",
			pred: IsNotFound,
			err:  fmt.Errorf("get customer: %w", ErrCustomerNotFound),
			want: true,
		},
		{
			name: "IsConflict on duplicate username",
			pred: IsConflict,
			err:  ErrDuplicateUsername,
			want: true,
		},
		{
			name: "IsInvalidPaging on paging error",
			pred: IsInvalidPaging,
			err:  ErrInvalidPaging,
			want: true,
		},
		{
			name: "IsOutOfBounds on bounds error",
			pred: IsOutOfBounds,
			err:  ErrIndexOutOfBounds,
			want: true,
		},
		{
			name: "IsUnauthorized on bad password",
			pred: IsUnauthorized,
			err:  ErrInvalidPassword,
			want: true,
		},
		{
			name: "IsNotFound rejects invalid argument",
			pred: IsNotFound,
			err:  ErrIncorrectID,
			want: false,
		},
		{
			name: "IsValidation rejects nil",
			pred: IsValidation,
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pred(tt.err)
			if got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError(KindInvalidArgument, "incorrect ID entered")
	if err.Error() != "incorrect ID entered" {
		t.Errorf("Error() = %q, want %q", err.Error(), "incorrect ID entered")
	}

	if ErrCustomerNull.Error() != "customer cannot be null" {
		t.Errorf("ErrCustomerNull message = %q", ErrCustomerNull.Error())
	}
	if ErrInsufficientStock.Error() != "order amount higher than inventory stock" {
		t.Errorf("ErrInsufficientStock message = %q", ErrInsufficientStock.Error())
	}
}

func TestSubmissionSentinelsMatchWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("register submission: %w", ErrSubmissionExists)
	if !errors.Is(wrapped, ErrSubmissionExists) {
		t.Error("wrapped ErrSubmissionExists should match with errors.Is")
	}
	if errors.Is(wrapped, ErrSubmissionHashMismatch) {
		t.Error("wrapped ErrSubmissionExists should not match ErrSubmissionHashMismatch")
	}
}
