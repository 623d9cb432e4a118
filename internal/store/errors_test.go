package store

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := internal(cause)

	if !errors.Is(err, ErrInternal) {
		t.Error("wrapped error does not match ErrInternal")
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through Unwrap")
	}
	if errors.Is(err, ErrDuplicateUser) {
		t.Error("internal error matched an unrelated sentinel")
	}
}

func TestTranslateDuplicate(t *testing.T) {
	t.Run("unique violation maps to the conflict error", func(t *testing.T) {
		err := translateDuplicate(gorm.ErrDuplicatedKey, ErrDuplicateItem)
		if !errors.Is(err, ErrDuplicateItem) {
			t.Errorf("got %v, want ErrDuplicateItem", err)
		}
	})

	t.Run("anything else is internal", func(t *testing.T) {
		err := translateDuplicate(fmt.Errorf("syntax error"), ErrDuplicateItem)
		if !errors.Is(err, ErrInternal) {
			t.Errorf("got %v, want ErrInternal", err)
		}
		if errors.Is(err, ErrDuplicateItem) {
			t.Error("non-duplicate failure matched the conflict error")
		}
	})
}
