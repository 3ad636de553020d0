package prism

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListCategoryValues returns every value registered under the category key.
func (c *RealClient) ListCategoryValues(ctx context.Context, name string) ([]CategoryValue, error) {
	raws, err := c.list(ctx, "categories/"+url.PathEscape(name)+"/list", "category", "")
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list values of category %s: %w", name, err)
	}

	values := make([]CategoryValue, 0, len(raws))
	for _, raw := range raws {
		var v CategoryValue
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode category value: %w", err)
		}
		if v.Name == "" {
			v.Name = name
		}
		values = append(values, v)
	}
	return values, nil
}

// EnsureCategoryKey creates the category key, or updates its description
// when it already exists. The v3 API treats PUT on a key as an upsert.
func (c *RealClient) EnsureCategoryKey(ctx context.Context, name, description string) error {
	body := map[string]string{"name": name, "description": description}
	if err := c.do(ctx, http.MethodPut, "categories/"+url.PathEscape(name), body, nil); err != nil {
		return fmt.Errorf("failed to create category %s: %w", name, err)
	}
	return nil
}

// CreateCategoryValue creates or updates a value under an existing key.
func (c *RealClient) CreateCategoryValue(ctx context.Context, name, value, description string) error {
	path := "categories/" + url.PathEscape(name) + "/" + url.PathEscape(value)
	body := map[string]string{"value": value, "description": description}
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("failed to create category value %s=%s: %w", name, value, err)
	}
	return nil
}
