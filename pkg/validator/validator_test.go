package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Status    string `json:"status" validate:"omitempty,oneof=pending shipped"`
}

func TestValidate_Success(t *testing.T) {
	req := sampleRequest{
		ProductID: "0d4cfe5e-8bfb-4e7b-a59c-7d0a90c8d3a1",
		Quantity:  2,
	}
	assert.NoError(t, Validate(req))
}

func TestValidate_FieldErrors(t *testing.T) {
	req := sampleRequest{ProductID: "not-a-uuid", Quantity: 0}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "must be a valid UUID", fields["ProductID"])
	assert.Equal(t, "must be greater than or equal to 1", fields["Quantity"])
	assert.Contains(t, valErr.Error(), "ProductID")
}

func TestValidate_OneOf(t *testing.T) {
	req := sampleRequest{
		ProductID: "0d4cfe5e-8bfb-4e7b-a59c-7d0a90c8d3a1",
		Quantity:  1,
		Status:    "unknown",
	}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Status"], "must be one of")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"product_id":"0d4cfe5e-8bfb-4e7b-a59c-7d0a90c8d3a1","quantity":3}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var req sampleRequest
	require.NoError(t, DecodeAndValidate(r, &req))
	assert.Equal(t, 3, req.Quantity)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))

	var req sampleRequest
	err := DecodeAndValidate(r, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed request body")
}
