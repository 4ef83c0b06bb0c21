package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClientRepo implements ports.ClientRepository.
type ClientRepo struct {
	pool Pool
}

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(pool Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, name, email, cpf, birth_date, phone, created_at`

func scanClient(row pgx.Row) (*domain.Client, error) {
	c := &domain.Client{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CPF, &c.BirthDate, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID fetches a client by its UUID.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return c, nil
}

// GetByCPF fetches a client by normalized CPF.
func (r *ClientRepo) GetByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE cpf = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, cpf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by cpf: %w", err)
	}
	return c, nil
}

// GetByCPFAndBirthDate fetches a client whose CPF and birth date both match.
// birth_date is a DATE column; the comparison ignores time of day.
func (r *ClientRepo) GetByCPFAndBirthDate(ctx context.Context, cpf string, birthDate time.Time) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE cpf = $1 AND birth_date = $2`

	c, err := scanClient(r.pool.QueryRow(ctx, query, cpf, birthDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by cpf and birth date: %w", err)
	}
	return c, nil
}
