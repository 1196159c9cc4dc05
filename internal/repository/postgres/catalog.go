package postgres

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

// CatalogRepository is a PostgreSQL implementation of repository.CatalogRepository.
type CatalogRepository struct {
	q Querier
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db}
}

const categoryColumns = `
	id, name, slug, description, base_fare, price_per_km, price_per_minute,
	minimum_fare, maximum_fare, commission_rate, is_active, created_at`

// GetCategory retrieves a service category by ID.
func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM service_categories WHERE id = $1`

	category, err := scanCategory(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListActiveCategories retrieves all active service categories.
func (r *CatalogRepository) ListActiveCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM service_categories
		WHERE is_active = TRUE ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.ServiceCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetVehicleType retrieves a vehicle type by ID.
func (r *CatalogRepository) GetVehicleType(ctx context.Context, id string) (*domain.VehicleType, error) {
	query := `
		SELECT id, name, slug, description, capacity, price_multiplier, is_active, created_at
		FROM vehicle_types WHERE id = $1
	`

	vt, err := scanVehicleType(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return vt, nil
}

// ListActiveVehicleTypes retrieves all active vehicle types.
func (r *CatalogRepository) ListActiveVehicleTypes(ctx context.Context) ([]*domain.VehicleType, error) {
	query := `
		SELECT id, name, slug, description, capacity, price_multiplier, is_active, created_at
		FROM vehicle_types WHERE is_active = TRUE ORDER BY name
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.VehicleType
	for rows.Next() {
		vt, err := scanVehicleType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, vt)
	}
	return types, rows.Err()
}

// CountActiveCategories returns the number of active categories.
func (r *CatalogRepository) CountActiveCategories(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM service_categories WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

func scanCategory(s rowScanner) (*domain.ServiceCategory, error) {
	var (
		category       domain.ServiceCategory
		description    sql.NullString
		baseFare       int64
		pricePerKm     int64
		pricePerMinute int64
		minimumFare    int64
		maximumFare    sql.NullInt64
	)

	err := s.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&description,
		&baseFare,
		&pricePerKm,
		&pricePerMinute,
		&minimumFare,
		&maximumFare,
		&category.CommissionRate,
		&category.IsActive,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.Description = description.String
	category.BaseFare = domain.Money(baseFare)
	category.PricePerKm = domain.Money(pricePerKm)
	category.PricePerMinute = domain.Money(pricePerMinute)
	category.MinimumFare = domain.Money(minimumFare)
	if maximumFare.Valid {
		max := domain.Money(maximumFare.Int64)
		category.MaximumFare = &max
	}

	return &category, nil
}

func scanVehicleType(s rowScanner) (*domain.VehicleType, error) {
	var (
		vt          domain.VehicleType
		description sql.NullString
	)

	err := s.Scan(
		&vt.ID,
		&vt.Name,
		&vt.Slug,
		&description,
		&vt.Capacity,
		&vt.PriceMultiplier,
		&vt.IsActive,
		&vt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	vt.Description = description.String
	return &vt, nil
}
