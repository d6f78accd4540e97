package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/boataniq/boataniq/internal/analysis"
	_ "modernc.org/sqlite"
)

// boatColumns is the column list shared by all boat queries, in Boat field
// scan order.
const boatColumns = `id, title, boat_type, brand, model, model_line, year_built, length, width,
	hull_material, engine_type, hull_type, price, description,
	features, equipment, special_features, design_features, unique_selling_points,
	engine_power, fuel_capacity, water_capacity, max_speed, berths,
	hull_design, cabin_layout, deck_features, aerodynamics,
	target_market, competitors, ideal_use_cases,
	design_era, manufacturer_history, model_evolution, market_reception`

// SQLiteStore implements Store using SQLite. It also hosts the analysis
// cache table used by the cached analyzer.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the catalog database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	boatsQuery := `
	CREATE TABLE IF NOT EXISTS boats (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		boat_type TEXT, brand TEXT, model TEXT, model_line TEXT,
		year_built TEXT, length TEXT, width TEXT,
		hull_material TEXT, engine_type TEXT, hull_type TEXT,
		price TEXT, description TEXT,
		features TEXT, equipment TEXT, special_features TEXT,
		design_features TEXT, unique_selling_points TEXT,
		engine_power TEXT, fuel_capacity TEXT, water_capacity TEXT,
		max_speed TEXT, berths TEXT,
		hull_design TEXT, cabin_layout TEXT, deck_features TEXT, aerodynamics TEXT,
		target_market TEXT, competitors TEXT, ideal_use_cases TEXT,
		design_era TEXT, manufacturer_history TEXT, model_evolution TEXT, market_reception TEXT
	);
	`
	if _, err := s.db.Exec(boatsQuery); err != nil {
		return fmt.Errorf("failed to create boats table: %w", err)
	}

	cacheQuery := `
	CREATE TABLE IF NOT EXISTS analysis_cache (
		image_hash TEXT PRIMARY KEY,
		result TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(cacheQuery); err != nil {
		return fmt.Errorf("failed to create analysis_cache table: %w", err)
	}

	return nil
}

func scanBoat(row interface{ Scan(...any) error }) (*Boat, error) {
	var b Boat
	fields := []any{
		&b.ID, &b.Title, &b.BoatType, &b.Brand, &b.Model, &b.ModelLine, &b.YearBuilt, &b.Length, &b.Width,
		&b.HullMaterial, &b.EngineType, &b.HullType, &b.Price, &b.Description,
		&b.Features, &b.Equipment, &b.SpecialFeatures, &b.DesignFeatures, &b.UniqueSellingPoints,
		&b.EnginePower, &b.FuelCapacity, &b.WaterCapacity, &b.MaxSpeed, &b.Berths,
		&b.HullDesign, &b.CabinLayout, &b.DeckFeatures, &b.Aerodynamics,
		&b.TargetMarket, &b.Competitors, &b.IdealUseCases,
		&b.DesignEra, &b.ManufacturerHistory, &b.ModelEvolution, &b.MarketReception,
	}

	// Scan through NullString so NULL columns land as empty strings.
	nulls := make([]sql.NullString, len(fields))
	targets := make([]any, len(fields))
	for i := range nulls {
		targets[i] = &nulls[i]
	}
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	for i, field := range fields {
		*field.(*string) = nulls[i].String
	}

	return &b, nil
}

// GetBoatByID retrieves a boat by its catalog id.
// Returns nil, nil if no such boat exists.
func (s *SQLiteStore) GetBoatByID(ctx context.Context, id string) (*Boat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT %s FROM boats WHERE id = ?", boatColumns), id)
	b, err := scanBoat(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query boat: %w", err)
	}
	return b, nil
}

// SearchByBrand finds boats whose brand or title matches the query.
func (s *SQLiteStore) SearchByBrand(ctx context.Context, query string, limit int) ([]Boat, error) {
	return s.search(ctx, "brand LIKE ? OR title LIKE ?", limit, likePattern(query), likePattern(query))
}

// SearchByModel finds boats whose model matches the query.
func (s *SQLiteStore) SearchByModel(ctx context.Context, query string, limit int) ([]Boat, error) {
	return s.search(ctx, "model LIKE ?", limit, likePattern(query))
}

// SearchByKeywords finds boats matching every whitespace-separated keyword
// against the title, brand, model or description.
func (s *SQLiteStore) SearchByKeywords(ctx context.Context, query string, limit int) ([]Boat, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	var clauses []string
	var args []any
	for _, kw := range keywords {
		clauses = append(clauses, "(title LIKE ? OR brand LIKE ? OR model LIKE ? OR description LIKE ?)")
		pattern := likePattern(kw)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	return s.search(ctx, strings.Join(clauses, " AND "), limit, args...)
}

func likePattern(query string) string {
	return "%" + strings.TrimSpace(query) + "%"
}

func (s *SQLiteStore) search(ctx context.Context, where string, limit int, args ...any) ([]Boat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT %s FROM boats WHERE %s LIMIT ?", boatColumns, where)
	rows, err := s.db.QueryContext(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search boats: %w", err)
	}
	defer rows.Close()

	var boats []Boat
	for rows.Next() {
		b, err := scanBoat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan boat: %w", err)
		}
		boats = append(boats, *b)
	}

	return boats, rows.Err()
}

// Count returns the number of boats in the catalog.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boats").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count boats: %w", err)
	}
	return count, nil
}

// Insert adds or replaces a boat record.
func (s *SQLiteStore) Insert(ctx context.Context, b *Boat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 35), ", ")
	query := fmt.Sprintf("INSERT OR REPLACE INTO boats (%s) VALUES (%s)", boatColumns, placeholders)
	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.Title, b.BoatType, b.Brand, b.Model, b.ModelLine, b.YearBuilt, b.Length, b.Width,
		b.HullMaterial, b.EngineType, b.HullType, b.Price, b.Description,
		b.Features, b.Equipment, b.SpecialFeatures, b.DesignFeatures, b.UniqueSellingPoints,
		b.EnginePower, b.FuelCapacity, b.WaterCapacity, b.MaxSpeed, b.Berths,
		b.HullDesign, b.CabinLayout, b.DeckFeatures, b.Aerodynamics,
		b.TargetMarket, b.Competitors, b.IdealUseCases,
		b.DesignEra, b.ManufacturerHistory, b.ModelEvolution, b.MarketReception,
	)
	if err != nil {
		return fmt.Errorf("failed to insert boat: %w", err)
	}
	return nil
}

// GetAnalysisCache retrieves a cached analysis result by image hash.
// Returns nil, nil if no cache entry exists.
func (s *SQLiteStore) GetAnalysisCache(imageHash string) (*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow("SELECT result FROM analysis_cache WHERE image_hash = ?", imageHash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis cache: %w", err)
	}

	var r analysis.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return &r, nil
}

// SetAnalysisCache stores an analysis result keyed by image hash.
func (s *SQLiteStore) SetAnalysisCache(imageHash string, r *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO analysis_cache (image_hash, result)
		VALUES (?, ?)
		ON CONFLICT(image_hash) DO UPDATE SET
			result = excluded.result,
			created_at = CURRENT_TIMESTAMP
	`, imageHash, string(payload))
	if err != nil {
		return fmt.Errorf("failed to cache analysis result: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
