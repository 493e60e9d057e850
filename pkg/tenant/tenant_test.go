package tenant

import (
	apperrors "barberbook/pkg/errors"
	"context"
	"testing"
)

func TestRequire(t *testing.T) {
	if _, err := Require(context.Background()); !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
		t.Errorf("missing tenant should be unauthorized, got %v", err)
	}

	ctx := WithTenant(context.Background(), "shop-1")
	id, err := Require(ctx)
	if err != nil || id != "shop-1" {
		t.Errorf("Require() = %q, %v", id, err)
	}

	if _, ok := FromContext(WithTenant(context.Background(), "")); ok {
		t.Errorf("empty tenant must not be reported as resolved")
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"shop-1", "A", "barbearia_centro"} {
		if !ValidID(id) {
			t.Errorf("%q should be valid", id)
		}
	}
	for _, id := range []string{"", "-shop", "shop 1", "shop/1"} {
		if ValidID(id) {
			t.Errorf("%q should be invalid", id)
		}
	}
}
