package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/franckalain/foodfacts/internal/models"
)

const defaultUPCDatabaseBaseURL = "https://api.upcdatabase.org"

// UPCDatabase queries upcdatabase.org, a sparse fallback source that
// knows names and brands but no nutrition data.
type UPCDatabase struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewUPCDatabase(userAgent string, timeout time.Duration) *UPCDatabase {
	if userAgent == "" {
		userAgent = "foodfacts/1.0"
	}
	return &UPCDatabase{
		baseURL:   defaultUPCDatabaseBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (u *UPCDatabase) Name() string { return "upcdatabase" }

func (u *UPCDatabase) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		u.baseURL+"/product/"+barcode, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", u.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upcdatabase request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upcdatabase returned status %d", resp.StatusCode)
	}

	var data struct {
		Success  bool   `json:"success"`
		Title    string `json:"title"`
		Brand    string `json:"brand"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !data.Success {
		return nil, ErrNotFound
	}

	name := cleanText(data.Title)
	if name == "" {
		name = "Product " + barcode
	}
	return &models.Product{
		Barcode:  barcode,
		Name:     name,
		Brand:    cleanText(data.Brand),
		Category: cleanText(data.Category),
		Source:   u.Name(),
	}, nil
}
