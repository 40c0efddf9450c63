package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/franckalain/foodfacts/internal/models"
)

const defaultOFFBaseURL = "https://world.openfoodfacts.org"

// OpenFoodFacts queries the Open Food Facts v2 product API.
type OpenFoodFacts struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewOpenFoodFacts(userAgent string, timeout time.Duration) *OpenFoodFacts {
	if userAgent == "" {
		userAgent = "foodfacts/1.0"
	}
	return &OpenFoodFacts{
		baseURL:   defaultOFFBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (o *OpenFoodFacts) Name() string { return "openfoodfacts" }

// offResponse is the subset of the v2 product payload we consume.
// Nutriments arrive as a loosely typed map since values may be numbers
// or strings depending on the record.
type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string         `json:"product_name"`
		GenericName     string         `json:"generic_name"`
		Brands          string         `json:"brands"`
		Categories      string         `json:"categories"`
		IngredientsText string         `json:"ingredients_text"`
		Nutriments      map[string]any `json:"nutriments"`
		ImageURL        string         `json:"image_url"`
		NutriscoreGrade string         `json:"nutriscore_grade"`
		EcoscoreGrade   string         `json:"ecoscore_grade"`
		NovaGroup       int            `json:"nova_group"`
	} `json:"product"`
}

func (o *OpenFoodFacts) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json", o.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts returned status %d", resp.StatusCode)
	}

	var data offResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if data.Status != 1 {
		return nil, ErrNotFound
	}

	p := data.Product
	name := cleanText(p.ProductName)
	if name == "" {
		name = cleanText(p.GenericName)
	}
	if name == "" {
		name = "Product " + barcode
	}

	return &models.Product{
		Barcode:     barcode,
		Name:        name,
		Brand:       cleanText(p.Brands),
		Category:    cleanText(p.Categories),
		Ingredients: cleanText(p.IngredientsText),
		Facts:       models.FactsFromNutriments(p.Nutriments),
		ImageURL:    p.ImageURL,
		NutriScore:  models.GradeFromString(p.NutriscoreGrade),
		EcoScore:    models.GradeFromString(p.EcoscoreGrade),
		NovaGroup:   p.NovaGroup,
		Source:      o.Name(),
	}, nil
}

// cleanText collapses whitespace and drops language-tag prefixes that
// Open Food Facts leaves on some fields ("en:Cereals").
func cleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, prefix := range []string{"en:", "fr:", "de:", "es:"} {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}
