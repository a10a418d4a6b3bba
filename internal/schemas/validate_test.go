package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorsSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(VendorsSchema), &v))
	assert.Equal(t, "object", v["type"])
}

func TestValidateVendors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "single vendor",
			content: `{"vendors":[{"vendor":"pinpoint","domain":"pinpointhq.com"}]}`,
		},
		{
			name:    "replace flag",
			content: `{"replace":true,"vendors":[{"vendor":"teamtailor","domain":"teamtailor.com"}]}`,
		},
		{
			name:    "missing vendors",
			content: `{"replace":false}`,
			wantErr: true,
		},
		{
			name:    "empty vendors",
			content: `{"vendors":[]}`,
			wantErr: true,
		},
		{
			name:    "uppercase vendor",
			content: `{"vendors":[{"vendor":"Pinpoint","domain":"pinpointhq.com"}]}`,
			wantErr: true,
		},
		{
			name:    "domain without dot",
			content: `{"vendors":[{"vendor":"pinpoint","domain":"localhost"}]}`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			content: `{"vendors":[{"vendor":"pinpoint","domain":"pinpointhq.com","regex":".*"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVendors([]byte(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateVendors_Malformed(t *testing.T) {
	err := ValidateVendors([]byte("{ invalid json }"))
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, err.Error(), "failed to parse document")
	assert.NotContains(t, err.Error(), "schema")
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "vendors.0.vendor", Message: "does not match pattern"},
			{Field: "vendors.0.domain", Message: "is required"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "vendors.0.vendor")
	assert.Contains(t, errorMsg, "vendors.0.domain")
}
