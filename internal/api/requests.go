// Shelfmate - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmate/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// RecommendationRequest is the validated input of GET|POST /recommendations.
// The original form field names prod and nbr are accepted as aliases of
// item_name and top_n.
type RecommendationRequest struct {
	ItemName string `json:"item_name" validate:"required,notblank,printable,max=512"`
	TopN     int    `json:"top_n" validate:"min=0,max=1000"`
	Truncate int    `json:"truncate" validate:"min=0,max=1000"`
}

// recommendationBody is the JSON body shape, aliases included.
type recommendationBody struct {
	ItemName *string `json:"item_name"`
	Prod     *string `json:"prod"`
	TopN     *int    `json:"top_n"`
	Nbr      *int    `json:"nbr"`
	Truncate *int    `json:"truncate"`
}

// SimilarRequest is the validated input of GET /recommendations/similar/{name}.
type SimilarRequest struct {
	ItemName string `json:"name" validate:"required,notblank,printable,max=512"`
	K        int    `json:"k" validate:"min=0,max=1000"`
	Truncate int    `json:"truncate" validate:"min=0,max=1000"`
}

// TrendingRequest is the validated input of GET /products/trending.
type TrendingRequest struct {
	Limit    int `json:"limit" validate:"min=1,max=1000"`
	Truncate int `json:"truncate" validate:"min=0,max=1000"`
}

// SuggestRequest is the validated input of GET /products/suggest.
type SuggestRequest struct {
	Query string `json:"q" validate:"required,notblank,printable,max=128"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

// BrandsRequest is the validated input of GET /catalog/brands.
type BrandsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=1000"`
}

// errBadParam marks malformed (non-numeric) parameters.
var errBadParam = errors.New("invalid parameter")

// intParam parses the first present of names from values, returning def
// when none is set.
func intParam(get func(string) string, def int, names ...string) (int, error) {
	for _, name := range names {
		raw := strings.TrimSpace(get(name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", errBadParam, name)
		}
		return n, nil
	}
	return def, nil
}

// stringParam returns the first non-empty of names.
func stringParam(get func(string) string, names ...string) string {
	for _, name := range names {
		if v := get(name); v != "" {
			return v
		}
	}
	return ""
}

// parseRecommendationRequest reads a RecommendationRequest from the query
// string (GET), a JSON body or a form body (POST).
func parseRecommendationRequest(r *http.Request) (RecommendationRequest, error) {
	if r.Method == http.MethodPost && isJSON(r) {
		return parseRecommendationJSON(r)
	}

	get := r.URL.Query().Get
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return RecommendationRequest{}, fmt.Errorf("%w: malformed form body", errBadParam)
		}
		get = r.Form.Get
	}

	req := RecommendationRequest{ItemName: stringParam(get, "item_name", "prod")}
	var err error
	if req.TopN, err = intParam(get, 0, "top_n", "nbr"); err != nil {
		return req, err
	}
	if req.Truncate, err = intParam(get, 0, "truncate"); err != nil {
		return req, err
	}
	return req, nil
}

func parseRecommendationJSON(r *http.Request) (RecommendationRequest, error) {
	var body recommendationBody
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return RecommendationRequest{}, fmt.Errorf("%w: malformed JSON body", errBadParam)
	}

	var req RecommendationRequest
	switch {
	case body.ItemName != nil:
		req.ItemName = *body.ItemName
	case body.Prod != nil:
		req.ItemName = *body.Prod
	}
	switch {
	case body.TopN != nil:
		req.TopN = *body.TopN
	case body.Nbr != nil:
		req.TopN = *body.Nbr
	}
	if body.Truncate != nil {
		req.Truncate = *body.Truncate
	}
	return req, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// validateRequest validates a request struct, writing a 400 on failure.
// It reports whether the handler may continue.
func validateRequest(rw *ResponseWriter, req interface{}) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
