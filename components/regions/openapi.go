package regions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationID names the lookup operation in the generated document.
const OperationID = "listRegions"

// OpenAPI returns a validated OpenAPI 3 document describing the regions
// endpoint as mounted under basePath.
func OpenAPI(ctx context.Context, basePath string, fns ...OptionFn) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("regions: context is required")
	}
	opts := NewOptions(fns...)
	path := mountPath(basePath, opts.RoutePath)

	region := map[string]any{
		"type":     "object",
		"required": []string{"id", "name_cn"},
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"name_cn": map[string]any{"type": "string"},
			"name_en": map[string]any{"type": "string"},
		},
	}
	envelope := map[string]any{
		"type":     "object",
		"required": []string{"boolen", "data"},
		"properties": map[string]any{
			"boolen": map[string]any{"type": "integer", "enum": []int{1}},
			"data":   map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Region"}},
		},
	}

	raw, err := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Regions",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			path: map[string]any{
				"get": map[string]any{
					"operationId": OperationID,
					"summary":     "List the children of a region, or the top level when no parent is given.",
					"parameters": []any{
						map[string]any{
							"name":     opts.Param,
							"in":       "query",
							"required": false,
							"schema":   map[string]any{"type": "string"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Region options",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/RegionList"},
								},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Region":     region,
				"RegionList": envelope,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("regions: encode openapi: %w", err)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("regions: load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("regions: validate openapi: %w", err)
	}
	return doc, nil
}
