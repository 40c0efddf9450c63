package models

import (
	"time"
)

// Product represents a food product looked up by barcode
type Product struct {
	Barcode     string        `json:"barcode"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand,omitempty"`
	Category    string        `json:"category,omitempty"`
	Ingredients string        `json:"ingredients,omitempty"`
	Facts       NutrientFacts `json:"nutrient_facts"`
	ImageURL    string        `json:"image_url,omitempty"`

	// Quality indicators
	NutriScore  Grade `json:"nutriscore,omitempty"`
	EcoScore    Grade `json:"ecoscore,omitempty"`
	NovaGroup   int   `json:"nova_group,omitempty"` // 1-4, 0 when unknown
	HealthScore int   `json:"health_score"`

	// Dietary flags; nil means unknown (no ingredient list to judge from)
	Vegan       *bool    `json:"vegan,omitempty"`
	Vegetarian  *bool    `json:"vegetarian,omitempty"`
	PalmOilFree *bool    `json:"palm_oil_free,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`

	Source    string    `json:"source,omitempty"` // which lookup provider supplied the record
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScanRecord represents a single lookup event
type ScanRecord struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Method    string    `json:"method"` // "image" or "manual"
	Status    string    `json:"status"` // "completed" or "failed"
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is a user review of a product
type Review struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"` // 1-5
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite marks a product as favorited
type Favorite struct {
	Barcode   string    `json:"barcode"`
	CreatedAt time.Time `json:"created_at"`
}
