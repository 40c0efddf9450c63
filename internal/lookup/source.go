// Package lookup fetches product records from external barcode
// databases. Sources are tried in order; the first hit wins.
package lookup

import (
	"context"
	"errors"
	"log"

	"github.com/franckalain/foodfacts/internal/models"
)

// ErrNotFound means the source answered but has no product for the
// barcode. Transport failures are returned as ordinary errors.
var ErrNotFound = errors.New("product not found")

// Source supplies a product record for a validated barcode.
type Source interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*models.Product, error)
}

// Chain queries sources in order and returns the first product found.
// A source that fails outright is logged and skipped, so one provider
// being down does not hide the others.
type Chain struct {
	sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	for _, src := range c.sources {
		product, err := src.Lookup(ctx, barcode)
		if err == nil {
			return product, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("lookup: %s failed for %s: %v", src.Name(), barcode, err)
	}
	return nil, ErrNotFound
}
