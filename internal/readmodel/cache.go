package readmodel

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
)

// CacheKey names a cached list result for view under the given filters.
func CacheKey(view View, filters interface{}) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("readmodel:%s:%x", view, md5.Sum(data)), nil
}

// Invalidate drops every cached result of the given views.
func Invalidate(ctx context.Context, c cache.Cache, views ...View) error {
	for _, v := range views {
		if err := c.DeletePattern(ctx, fmt.Sprintf("readmodel:%s:*", v)); err != nil {
			return err
		}
	}
	return nil
}
