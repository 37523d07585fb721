package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassification(t *testing.T) {
	root := New("root")
	minor := Wrap(root, "minor")
	instance := Wrapf(minor, "value: %d", 3)

	assert.Equal(t, "root: minor: value: 3", instance.Error())
	assert.True(t, Is(instance, root))
	assert.True(t, Is(instance, minor))
	assert.False(t, Is(root, minor))
}

func TestToAPIErrors(t *testing.T) {
	t.Run("Internal", func(t *testing.T) {
		errs := ToAPIErrors(Wrap(ErrInternal, "something broke"))
		require.Len(t, errs, 1)
		assert.Equal(t, "500", errs[0].Status)
		assert.Empty(t, errs[0].Detail)
	})

	t.Run("APIError", func(t *testing.T) {
		apiErr := NewAPIError(http.StatusForbidden, "Forbidden.", "not allowed")
		apiErr.AddMeta("some", "value")
		errs := ToAPIErrors(apiErr)
		require.Len(t, errs, 1)
		assert.Equal(t, http.StatusForbidden, errs[0].IntStatus())
		assert.Equal(t, "value", errs[0].Meta["some"])
	})

	t.Run("NotFound", func(t *testing.T) {
		errs := ToAPIErrors(WrapDet(Wrap(ErrNotFound, "resource"), "no article").WithDetail("Resource not found."))
		require.Len(t, errs, 1)
		assert.Equal(t, "404", errs[0].Status)
		assert.Equal(t, "Resource not found.", errs[0].Detail)
	})

	t.Run("Multi", func(t *testing.T) {
		errs := ToAPIErrors(MultiError{
			NewAPIError(http.StatusBadRequest, "a", ""),
			NewAPIError(http.StatusBadRequest, "b", ""),
		})
		require.Len(t, errs, 2)
		assert.Equal(t, http.StatusBadRequest, Status(errs))
	})
}

func TestMultiError(t *testing.T) {
	var multi MultiError
	assert.NoError(t, multi.ErrorOrNil())

	first := WrapDet(ErrNotFound, "first")
	multi = append(multi, first, WrapDet(ErrInvalidInput, "second"))
	err := multi.ErrorOrNil()
	if assert.Error(t, err) {
		assert.Equal(t, first.Error()+","+multi[1].Error(), err.Error())
		assert.True(t, Is(err, ErrInvalidInput))
	}
}
