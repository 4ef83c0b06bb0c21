package postgres

import (
	"context"
	"testing"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *domain.Client {
	return &domain.Client{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		Email:     "maria@example.com",
		CPF:       "123.456.789-00",
		BirthDate: time.Date(1985, 3, 20, 0, 0, 0, 0, time.UTC),
		Phone:     strPtr("+5511987654321"),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func clientColumnNames() []string {
	return []string{"id", "name", "email", "cpf", "birth_date", "phone", "created_at"}
}

func clientRow(c *domain.Client) *pgxmock.Rows {
	return pgxmock.NewRows(clientColumnNames()).AddRow(
		c.ID, c.Name, c.Email, c.CPF, c.BirthDate, c.Phone, c.CreatedAt,
	)
}

func TestClientRepo_GetByCPF(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewClientRepo(mock)
	c := newTestClient()

	mock.ExpectQuery("SELECT .+ FROM clients WHERE cpf").
		WithArgs(c.CPF).
		WillReturnRows(clientRow(c))

	result, err := repo.GetByCPF(context.Background(), c.CPF)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.CPF, result.CPF)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepo_GetByCPF_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewClientRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM clients WHERE cpf").
		WithArgs("999.999.999-99").
		WillReturnRows(pgxmock.NewRows(clientColumnNames()))

	result, err := repo.GetByCPF(context.Background(), "999.999.999-99")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepo_GetByCPFAndBirthDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewClientRepo(mock)
	c := newTestClient()

	mock.ExpectQuery("SELECT .+ FROM clients WHERE cpf = .+ AND birth_date").
		WithArgs(c.CPF, c.BirthDate).
		WillReturnRows(clientRow(c))

	result, err := repo.GetByCPFAndBirthDate(context.Background(), c.CPF, c.BirthDate)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewClientRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM clients WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(clientColumnNames()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
