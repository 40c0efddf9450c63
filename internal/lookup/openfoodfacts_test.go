package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/franckalain/foodfacts/internal/models"
)

const offProductJSON = `{
	"status": 1,
	"product": {
		"product_name": "Nutella",
		"brands": "Ferrero",
		"categories": "en:Spreads",
		"ingredients_text": "Sugar, palm oil, hazelnuts, cocoa, milk powder, lecithin (E322)",
		"image_url": "https://images.example/nutella.jpg",
		"nutriscore_grade": "e",
		"ecoscore_grade": "d",
		"nova_group": 4,
		"nutriments": {
			"energy-kcal_100g": 539,
			"fat_100g": 30.9,
			"saturated-fat_100g": 10.6,
			"carbohydrates_100g": 57.5,
			"sugars_100g": 56.3,
			"fiber_100g": "3.5",
			"proteins_100g": 6.3,
			"salt_100g": 0.107
		}
	}
}`

func newOFFTestServer(t *testing.T, handler http.HandlerFunc) *OpenFoodFacts {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	off := NewOpenFoodFacts("foodfacts-test/1.0", 2*time.Second)
	off.baseURL = srv.URL
	return off
}

func TestOpenFoodFactsLookup(t *testing.T) {
	off := newOFFTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/3017620422003.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "foodfacts-test/1.0" {
			t.Errorf("unexpected user agent %q", ua)
		}
		fmt.Fprint(w, offProductJSON)
	})

	product, err := off.Lookup(context.Background(), "3017620422003")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if product.Name != "Nutella" || product.Brand != "Ferrero" {
		t.Errorf("got %q / %q", product.Name, product.Brand)
	}
	if product.Category != "Spreads" {
		t.Errorf("language prefix not stripped: %q", product.Category)
	}
	if product.NutriScore != models.GradeE {
		t.Errorf("NutriScore = %q, want E", product.NutriScore)
	}
	if product.NovaGroup != 4 {
		t.Errorf("NovaGroup = %d, want 4", product.NovaGroup)
	}
	if product.Facts.Sugars == nil || *product.Facts.Sugars != 56.3 {
		t.Errorf("sugars not mapped: %v", product.Facts.Sugars)
	}
	// String-typed nutriment values must still be coerced.
	if product.Facts.Fiber == nil || *product.Facts.Fiber != 3.5 {
		t.Errorf("fiber not coerced from string: %v", product.Facts.Fiber)
	}
	if product.Facts.Sodium != nil {
		t.Error("absent sodium should stay nil")
	}
}

func TestOpenFoodFactsNotFound(t *testing.T) {
	off := newOFFTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": 0, "status_verbose": "product not found"}`)
	})

	_, err := off.Lookup(context.Background(), "0000000000000")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenFoodFactsServerError(t *testing.T) {
	off := newOFFTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := off.Lookup(context.Background(), "3017620422003")
	if err == nil || err == ErrNotFound {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestBarcodeLookupWithoutKey(t *testing.T) {
	bl := NewBarcodeLookup("", time.Second)
	if _, err := bl.Lookup(context.Background(), "036000291452"); err != ErrNotFound {
		t.Errorf("keyless lookup should be ErrNotFound, got %v", err)
	}
}
