package swaggerdoc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/broady/swaggerdoc/parser"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := Errorf(CodeLoad, "load %s", "./api")
	assert.Equal(t, "load: load ./api", err.Error())

	cause := errors.New("boom")
	wrapped := wrapError(CodeWrite, cause, "write service.json")
	assert.Equal(t, "write: write service.json: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	detailed := wrapped.WithDetail("file", "service.json")
	assert.Equal(t, "service.json", detailed.Details["file"])
	assert.Nil(t, wrapped.Details, "WithDetail must not modify the receiver")
	assert.ErrorIs(t, detailed, cause)
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	own := NewError(CodeBundle, "missing")
	assert.Same(t, own, AsError(fmt.Errorf("outer: %w", own)))

	_, perr := parser.New(nil, parser.Options{})
	cfg := AsError(perr)
	assert.Equal(t, CodeInvalidConfig, cfg.Code)
	assert.Contains(t, cfg.Details, "Source")

	assert.Equal(t, CodeCanceled, AsError(context.Canceled).Code)
	assert.Equal(t, CodeInternal, AsError(errors.New("x")).Code)

	type query struct {
		Type string `validate:"required"`
	}
	verr := validator.New().Struct(query{})
	require.Error(t, verr)
	got := AsError(verr)
	assert.Equal(t, CodeInvalidArgument, got.Code)
	assert.Equal(t, "Type: required", got.Message)
	assert.Equal(t, "required", got.Details["Type"])
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, CodeInvalidArgument.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, CodeNotFound.HTTPStatus())
	assert.Equal(t, 499, CodeCanceled.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, CodeLoad.HTTPStatus())
}
