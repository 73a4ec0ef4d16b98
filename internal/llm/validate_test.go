package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var personSchema = &Schema{
	Name: "test-person",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
		},
		"required":             []string{"name"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_ValidDocument(t *testing.T) {
	if err := validateResponse(personSchema, json.RawMessage(`{"name":"ada","age":36}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	err := validateResponse(personSchema, json.RawMessage(`{"age":36}`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	err := validateResponse(personSchema, json.RawMessage(`{"name":"ada","age":"old"}`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	err := validateResponse(personSchema, json.RawMessage(`{"name":`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestCompiledSchema_Cached(t *testing.T) {
	first, err := compiledSchema(personSchema)
	if err != nil {
		t.Fatal(err)
	}
	second, err := compiledSchema(personSchema)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached compiled schema on the second call")
	}
}
