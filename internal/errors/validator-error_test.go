package app_errors

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "client_name", toSnakeCase("ClientName"))
	assert.Equal(t, "case_id", toSnakeCase("CaseID"))
	assert.Equal(t, "amount", toSnakeCase("Amount"))
}

func TestParseValidationError(t *testing.T) {
	type req struct {
		ClientName string `validate:"required"`
		Mobile     string `validate:"min=6"`
	}

	err := validator.New().Struct(req{Mobile: "12"})
	details := ParseValidationError(err)

	assert.Len(t, details, 2)
	assert.Equal(t, "client_name", details[0].Field)
	assert.Equal(t, "validation.required", details[0].MessageKey)
	assert.Equal(t, "mobile", details[1].Field)
	assert.Equal(t, "6", details[1].Params["min"])
}

func TestParseValidationError_NotValidatorError(t *testing.T) {
	assert.Nil(t, ParseValidationError(errors.New("boom")))
}

func TestMapPgxError(t *testing.T) {
	notFound := MapPgxError(pgx.ErrNoRows, "case_not_found")
	assert.Equal(t, 404, notFound.Code)
	assert.Equal(t, "case_not_found", notFound.MessageKey)

	conflict := MapPgxError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, 409, conflict.Code)
	assert.Equal(t, ErrConflict, conflict.Type)

	internal := MapPgxError(errors.New("connection reset"))
	assert.Equal(t, 500, internal.Code)
	assert.Equal(t, "internal_error", internal.MessageKey)
}
