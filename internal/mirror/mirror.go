// Package mirror persists the whole product collection as one serialized blob.
//
// A mirror is a convenience copy of remote state. Storage failures are logged
// and swallowed here; they never reach the caller.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/five82/shelf/internal/catalog"
)

// DefaultKey names the stored blob, both as the Redis key and the file stem.
const DefaultKey = "platzi_products_data"

// Mirror stores and retrieves the product collection.
type Mirror interface {
	// Load returns the stored collection, or false when nothing usable is stored.
	Load(ctx context.Context) ([]catalog.Product, bool)
	Save(ctx context.Context, products []catalog.Product)
	Clear(ctx context.Context)
}

var (
	_ Mirror = (*File)(nil)
	_ Mirror = (*Redis)(nil)
)

func encode(products []catalog.Product) ([]byte, error) {
	if products == nil {
		products = []catalog.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
