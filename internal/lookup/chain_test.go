package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/franckalain/foodfacts/internal/models"
)

type stubSource struct {
	name    string
	product *models.Product
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func TestChainFirstHitWins(t *testing.T) {
	first := &stubSource{name: "first", product: &models.Product{Barcode: "1", Source: "first"}}
	second := &stubSource{name: "second", product: &models.Product{Barcode: "1", Source: "second"}}

	product, err := NewChain(first, second).Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if product.Source != "first" {
		t.Errorf("Source = %q, want first", product.Source)
	}
	if second.calls != 0 {
		t.Error("second source should not be queried after a hit")
	}
}

func TestChainFallsThroughNotFound(t *testing.T) {
	first := &stubSource{name: "first", err: ErrNotFound}
	second := &stubSource{name: "second", product: &models.Product{Barcode: "1", Source: "second"}}

	product, err := NewChain(first, second).Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if product.Source != "second" {
		t.Errorf("Source = %q, want second", product.Source)
	}
}

func TestChainSkipsFailingSource(t *testing.T) {
	first := &stubSource{name: "first", err: errors.New("connection refused")}
	second := &stubSource{name: "second", product: &models.Product{Barcode: "1", Source: "second"}}

	product, err := NewChain(first, second).Lookup(context.Background(), "1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if product.Source != "second" {
		t.Errorf("Source = %q, want second", product.Source)
	}
}

func TestChainExhausted(t *testing.T) {
	first := &stubSource{name: "first", err: ErrNotFound}
	second := &stubSource{name: "second", err: errors.New("timeout")}

	_, err := NewChain(first, second).Lookup(context.Background(), "1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain().Lookup(context.Background(), "1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestChainCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failing := &stubSource{name: "failing", err: errors.New("dial tcp: context canceled")}
	_, err := NewChain(failing).Lookup(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
