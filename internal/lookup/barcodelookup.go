package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/franckalain/foodfacts/internal/models"
)

const defaultBarcodeLookupBaseURL = "https://api.barcodelookup.com"

// BarcodeLookup queries barcodelookup.com. Requires an API key; with
// no key configured every lookup reports not found so the chain moves
// on without noise.
type BarcodeLookup struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewBarcodeLookup(apiKey string, timeout time.Duration) *BarcodeLookup {
	return &BarcodeLookup{
		baseURL: defaultBarcodeLookupBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *BarcodeLookup) Name() string { return "barcodelookup" }

func (b *BarcodeLookup) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	if b.apiKey == "" {
		return nil, ErrNotFound
	}

	q := url.Values{}
	q.Set("barcode", barcode)
	q.Set("formatted", "y")
	q.Set("key", b.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		b.baseURL+"/v3/products?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("barcodelookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("barcodelookup returned status %d", resp.StatusCode)
	}

	var data struct {
		Products []struct {
			ProductName string   `json:"product_name"`
			Brand       string   `json:"brand"`
			Category    string   `json:"category"`
			Ingredients string   `json:"ingredients"`
			Images      []string `json:"images"`
		} `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(data.Products) == 0 {
		return nil, ErrNotFound
	}

	p := data.Products[0]
	name := cleanText(p.ProductName)
	if name == "" {
		name = "Product " + barcode
	}
	product := &models.Product{
		Barcode:     barcode,
		Name:        name,
		Brand:       cleanText(p.Brand),
		Category:    cleanText(p.Category),
		Ingredients: cleanText(p.Ingredients),
		Source:      b.Name(),
	}
	if len(p.Images) > 0 {
		product.ImageURL = p.Images[0]
	}
	return product, nil
}
