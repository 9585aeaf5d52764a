package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renjie/prism-units/pkg/core/domain"
)

func TestErrorKinds(t *testing.T) {
	err := domain.NewError(domain.KindUnitNotFound, "no unit with symbol %q", "zz")

	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	assert.NotErrorIs(t, err, domain.ErrAmbiguousUnit)
	assert.Equal(t, domain.KindUnitNotFound, domain.KindOf(err))
	assert.Equal(t, `UnitNotFound: no unit with symbol "zz"`, err.Error())
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk on fire")
	err := domain.WrapError(domain.KindBadUnit, cause, "loading %s", "catalog")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.ErrorIs(t, wrapped, domain.ErrBadUnit)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, domain.KindBadUnit, domain.KindOf(wrapped))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestErrorIsDoesNotMatchConcreteErrors(t *testing.T) {
	a := domain.NewError(domain.KindArithmetic, "a")
	b := domain.NewError(domain.KindArithmetic, "b")

	// Only message-less sentinels match by kind
	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(a, domain.ErrArithmetic))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, domain.Kind(""), domain.KindOf(errors.New("plain")))
	assert.Equal(t, domain.Kind(""), domain.KindOf(nil))
}
