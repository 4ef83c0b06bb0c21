package postgres

import (
	"context"
	"errors"
	"fmt"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PropertyRepo implements ports.PropertyRepository.
type PropertyRepo struct {
	pool Pool
}

// NewPropertyRepo creates a new PropertyRepo.
func NewPropertyRepo(pool Pool) *PropertyRepo {
	return &PropertyRepo{pool: pool}
}

const propertyColumns = `id, name, description, location, price_cents, image_url, status, created_at, updated_at`

// Create inserts a new property.
func (r *PropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Location,
		p.PriceCents, p.ImageURL, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID fetches a property by its UUID.
func (r *PropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p := &domain.Property{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Location,
		&p.PriceCents, &p.ImageURL, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property by id: %w", err)
	}
	return p, nil
}

// List fetches properties newest first, optionally filtered by status.
func (r *PropertyRepo) List(ctx context.Context, status *domain.PropertyStatus) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p := domain.Property{}
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Location,
			&p.PriceCents, &p.ImageURL, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

// Update replaces the editable fields of a property.
func (r *PropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties
		SET name=$1, description=$2, location=$3, price_cents=$4, image_url=$5, status=$6, updated_at=$7
		WHERE id=$8`

	_, err := r.pool.Exec(ctx, query,
		p.Name, p.Description, p.Location, p.PriceCents,
		p.ImageURL, p.Status, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

// Delete removes a property.
func (r *PropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}
