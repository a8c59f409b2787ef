// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata so repeated validation of request types is cheap. Field names in
// errors are taken from json tags, so clients see the names they sent.
//
// Custom tags:
//
//	notblank   string is non-empty after trimming whitespace
//	printable  string contains no control characters
//
// Example:
//
//	type RecommendationRequest struct {
//	    ItemName string `json:"item_name" validate:"required,notblank,printable,max=512"`
//	    TopN     int    `json:"top_n" validate:"min=0,max=100"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
package validation
