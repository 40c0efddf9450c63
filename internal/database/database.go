package database

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/franckalain/foodfacts/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// DB interface defines the methods our database should implement
type DB interface {
	SaveProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, barcode string) (*models.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]*models.Product, error)
	SaveScan(ctx context.Context, scan *models.ScanRecord) error
	RecentScans(ctx context.Context, limit int) ([]*models.ScanRecord, error)
	SaveReview(ctx context.Context, review *models.Review) error
	ReviewsFor(ctx context.Context, barcode string) ([]*models.Review, error)
	ToggleFavorite(ctx context.Context, barcode string) (bool, error)
	Favorites(ctx context.Context) ([]*models.Product, error)
	Close() error
}

// SQLiteDB implements the DB interface
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Enable foreign keys and WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func initializeSchema(db *sql.DB) error {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}

	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("error executing schema: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// boolToInt maps a tri-state flag onto its column value, NULL meaning unknown.
func boolToInt(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}

func intToBool(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	v := n.Int64 != 0
	return &v
}

// SaveProduct inserts or updates a product record keyed by barcode
func (s *SQLiteDB) SaveProduct(ctx context.Context, p *models.Product) error {
	factsJSON, err := json.Marshal(p.Facts)
	if err != nil {
		return fmt.Errorf("error encoding facts: %w", err)
	}
	allergensJSON, err := json.Marshal(p.Allergens)
	if err != nil {
		return fmt.Errorf("error encoding allergens: %w", err)
	}

	query := `
		INSERT INTO products (
			barcode, name, brand, category, ingredients, facts, image_url,
			nutriscore, ecoscore, nova_group, health_score,
			vegan, vegetarian, palm_oil_free, allergens, source,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(barcode) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			category = excluded.category,
			ingredients = excluded.ingredients,
			facts = excluded.facts,
			image_url = excluded.image_url,
			nutriscore = excluded.nutriscore,
			ecoscore = excluded.ecoscore,
			nova_group = excluded.nova_group,
			health_score = excluded.health_score,
			vegan = excluded.vegan,
			vegetarian = excluded.vegetarian,
			palm_oil_free = excluded.palm_oil_free,
			allergens = excluded.allergens,
			source = excluded.source,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, query,
		p.Barcode, p.Name, p.Brand, p.Category, p.Ingredients,
		string(factsJSON), p.ImageURL,
		string(p.NutriScore), string(p.EcoScore), p.NovaGroup, p.HealthScore,
		boolToInt(p.Vegan), boolToInt(p.Vegetarian), boolToInt(p.PalmOilFree),
		string(allergensJSON), p.Source,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

func productColumns(prefix string) string {
	cols := []string{
		"barcode", "name", "brand", "category", "ingredients", "facts", "image_url",
		"nutriscore", "ecoscore", "nova_group", "health_score",
		"vegan", "vegetarian", "palm_oil_free", "allergens", "source",
		"created_at", "updated_at",
	}
	for i, c := range cols {
		cols[i] = prefix + c
	}
	return strings.Join(cols, ", ")
}

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var facts, allergens, nutriscore, ecoscore, createdAt, updatedAt string
	var vegan, vegetarian, palmOilFree sql.NullInt64

	err := row.Scan(
		&p.Barcode, &p.Name, &p.Brand, &p.Category, &p.Ingredients,
		&facts, &p.ImageURL,
		&nutriscore, &ecoscore, &p.NovaGroup, &p.HealthScore,
		&vegan, &vegetarian, &palmOilFree,
		&allergens, &p.Source, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(facts), &p.Facts); err != nil {
		return nil, fmt.Errorf("error decoding facts: %w", err)
	}
	if err := json.Unmarshal([]byte(allergens), &p.Allergens); err != nil {
		return nil, fmt.Errorf("error decoding allergens: %w", err)
	}
	p.NutriScore = models.Grade(nutriscore)
	p.EcoScore = models.Grade(ecoscore)
	p.Vegan = intToBool(vegan)
	p.Vegetarian = intToBool(vegetarian)
	p.PalmOilFree = intToBool(palmOilFree)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

// GetProduct retrieves a cached product by barcode. Returns (nil, nil)
// when no product is cached for that barcode.
func (s *SQLiteDB) GetProduct(ctx context.Context, barcode string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns("")+` FROM products WHERE barcode = ?`, barcode)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SearchProducts finds products whose name, brand or barcode contains
// the query string
func (s *SQLiteDB) SearchProducts(ctx context.Context, query string, limit int) ([]*models.Product, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns("")+` FROM products
		 WHERE name LIKE ? OR brand LIKE ? OR barcode LIKE ?
		 ORDER BY name LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// SaveScan records a lookup event in the scan history
func (s *SQLiteDB) SaveScan(ctx context.Context, scan *models.ScanRecord) error {
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (id, barcode, method, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.Barcode, scan.Method, scan.Status, scan.Error,
		scan.CreatedAt.Format(time.RFC3339))
	return err
}

// RecentScans retrieves the most recent scan records
func (s *SQLiteDB) RecentScans(ctx context.Context, limit int) ([]*models.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, method, status, error, created_at
		 FROM scans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.ScanRecord
	for rows.Next() {
		rec := &models.ScanRecord{}
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Barcode, &rec.Method, &rec.Status, &rec.Error, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, rec)
	}
	return results, rows.Err()
}

// SaveReview inserts a review, replacing any earlier review by the
// same author for the same product
func (s *SQLiteDB) SaveReview(ctx context.Context, review *models.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, barcode, author, rating, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(barcode, author) DO UPDATE SET
			rating = excluded.rating,
			text = excluded.text,
			created_at = excluded.created_at`,
		review.ID, review.Barcode, review.Author, review.Rating, review.Text,
		review.CreatedAt.Format(time.RFC3339))
	return err
}

// ReviewsFor retrieves all reviews for a product, newest first
func (s *SQLiteDB) ReviewsFor(ctx context.Context, barcode string) ([]*models.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, author, rating, text, created_at
		 FROM reviews WHERE barcode = ? ORDER BY created_at DESC`, barcode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Review
	for rows.Next() {
		r := &models.Review{}
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Barcode, &r.Author, &r.Rating, &r.Text, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ToggleFavorite adds the product to favorites, or removes it when
// already present. Returns true when the product is now a favorite.
func (s *SQLiteDB) ToggleFavorite(ctx context.Context, barcode string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE barcode = ?`, barcode)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO favorites (barcode, created_at) VALUES (?, ?)`,
		barcode, time.Now().Format(time.RFC3339))
	if err != nil {
		return false, err
	}
	return true, nil
}

// Favorites retrieves favorited products, most recently added first
func (s *SQLiteDB) Favorites(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns("p.")+`
		 FROM products p JOIN favorites f ON p.barcode = f.barcode
		 ORDER BY f.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
