// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package validation

import (
	"strings"
	"testing"
)

type productQuery struct {
	ItemName string `json:"item_name" validate:"required,notblank,printable,max=64"`
	TopN     int    `json:"top_n" validate:"min=0,max=100"`
	Sort     string `json:"sort" validate:"omitempty,oneof=score name"`
	Internal string `json:"-"`
	NoTag    int    `validate:"gte=0"`
}

func validQuery() productQuery {
	return productQuery{ItemName: "OPI Nail Lacquer", TopN: 5}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*productQuery)
	}{
		{name: "minimal", modify: func(q *productQuery) {}},
		{name: "zero top_n", modify: func(q *productQuery) { q.TopN = 0 }},
		{name: "max top_n", modify: func(q *productQuery) { q.TopN = 100 }},
		{name: "sort option", modify: func(q *productQuery) { q.Sort = "name" }},
		{name: "unicode name", modify: func(q *productQuery) { q.ItemName = "Crème Brûlée Lip Balm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := validQuery()
			tt.modify(&q)
			if err := ValidateStruct(&q); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*productQuery)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "missing name", modify: func(q *productQuery) { q.ItemName = "" },
			wantField: "item_name", wantTag: "required", wantMsg: "item_name is required"},
		{name: "blank name", modify: func(q *productQuery) { q.ItemName = "   " },
			wantField: "item_name", wantTag: "notblank", wantMsg: "item_name must not be blank"},
		{name: "control chars", modify: func(q *productQuery) { q.ItemName = "bad\x00name" },
			wantField: "item_name", wantTag: "printable", wantMsg: "control characters"},
		{name: "name too long", modify: func(q *productQuery) { q.ItemName = strings.Repeat("x", 65) },
			wantField: "item_name", wantTag: "max", wantMsg: "at most 64 characters"},
		{name: "negative top_n", modify: func(q *productQuery) { q.TopN = -1 },
			wantField: "top_n", wantTag: "min", wantMsg: "top_n must be at least 0"},
		{name: "top_n too large", modify: func(q *productQuery) { q.TopN = 101 },
			wantField: "top_n", wantTag: "max", wantMsg: "top_n must be at most 100"},
		{name: "bad sort", modify: func(q *productQuery) { q.Sort = "price" },
			wantField: "sort", wantTag: "oneof", wantMsg: "sort must be one of: score name"},
		{name: "untagged field uses go name", modify: func(q *productQuery) { q.NoTag = -1 },
			wantField: "NoTag", wantTag: "gte", wantMsg: "NoTag must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := validQuery()
			tt.modify(&q)
			err := ValidateStruct(&q)
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got field=%s tag=%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if !strings.Contains(errs[0].Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&productQuery{TopN: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Message != "item_name is required" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "item_name" {
		t.Errorf("unexpected details %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&productQuery{TopN: 500})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "item_name:") || !strings.Contains(apiErr.Message, "top_n:") {
		t.Errorf("expected both fields in message, got %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field details, got %v", apiErr.Details)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined error should join messages: %q", err.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	var ve RequestValidationError
	if ve.Error() != "validation failed" {
		t.Errorf("unexpected message %q", ve.Error())
	}
	if apiErr := ve.ToAPIError(); apiErr.Message != "Validation failed" {
		t.Errorf("unexpected api message %q", apiErr.Message)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("expected unknown field, got %s", err.Errors()[0].Field())
	}
}
