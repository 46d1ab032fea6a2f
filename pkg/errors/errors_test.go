package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/apmatch/pkg/errors"
)

func TestValidationError(t *testing.T) {
	err := errors.NewValidationError("invoice", "items", "document has no line items")

	assert.Equal(t, "invalid invoice: field items: document has no line items", err.Error())
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, errors.IsConfigError(err))
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := errors.NewValidationError("purchase order", "", "document has no line items")
	assert.Equal(t, "invalid purchase order: document has no line items", err.Error())
}

func TestConfigError(t *testing.T) {
	err := errors.NewConfigError("price_tolerance", "must not be negative")

	assert.Equal(t, "configuration error in price_tolerance: must not be negative", err.Error())
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
	assert.True(t, errors.IsConfigError(err))
	assert.False(t, errors.IsValidationError(err))
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := errors.NewParseError("yaml", "invoice.yaml", cause.Error(), cause)

	assert.Contains(t, err.Error(), "invoice.yaml")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIOErrorUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := errors.NewIOError("read", "/tmp/po.yaml", cause)

	assert.Contains(t, err.Error(), "/tmp/po.yaml")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.NoError(t, errors.WrapValidation("invoice", "total", nil))
	assert.NoError(t, errors.WrapIO("read", "x", nil))
	assert.NoError(t, errors.WrapParse("yaml", "x", nil))
}

func TestWrapValidation(t *testing.T) {
	cause := stderrors.New("negative unit price")
	err := errors.WrapValidation("invoice", "items[2].unit_price", cause)

	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "items[2].unit_price")
}
