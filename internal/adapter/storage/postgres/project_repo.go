package postgres

import (
	"context"
	"fmt"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

// ProjectRepo implements ports.ProjectRepository.
type ProjectRepo struct {
	pool Pool
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(pool Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

// ListByClient fetches the client's projects.
func (r *ProjectRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Project, error) {
	query := `SELECT id, client_id, name, unit, status, completion FROM projects WHERE client_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list projects by client: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p := domain.Project{}
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Unit, &p.Status, &p.Completion); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}
