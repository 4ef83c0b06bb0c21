package service

import (
	"context"
	"strings"
	"testing"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupContactService(t *testing.T) (*ContactServiceImpl, *mocks.MockContactRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactRepository(ctrl)
	return NewContactService(repo, zerolog.Nop()), repo, ctrl
}

func TestContactService_Submit(t *testing.T) {
	svc, repo, ctrl := setupContactService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, m *domain.ContactMessage) error {
			assert.Equal(t, "João", m.Name)
			assert.Equal(t, "joao@example.com", m.Email)
			return nil
		})

	m, err := svc.Submit(ctx, ports.ContactInput{
		Name:    "  João  ",
		Email:   " joao@example.com ",
		Message: "Tenho interesse no Residencial Aurora.",
	})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestContactService_Submit_Invalid(t *testing.T) {
	svc, _, ctrl := setupContactService(t)
	defer ctrl.Finish()

	tests := []struct {
		name string
		in   ports.ContactInput
	}{
		{"missing name", ports.ContactInput{Email: "a@b.com", Message: "hi"}},
		{"bad email", ports.ContactInput{Name: "João", Email: "not-an-email", Message: "hi"}},
		{"empty message", ports.ContactInput{Name: "João", Email: "a@b.com", Message: "   "}},
		{"message too long", ports.ContactInput{Name: "João", Email: "a@b.com", Message: strings.Repeat("x", 4001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := svc.Submit(context.Background(), tt.in)
			assert.Nil(t, m)
			assertAppError(t, err, "VAL_001")
		})
	}
}

func TestContactService_List_ClampsPaging(t *testing.T) {
	svc, repo, ctrl := setupContactService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo.EXPECT().List(ctx, 1, 20).Return([]domain.ContactMessage{}, int64(0), nil)

	_, total, err := svc.List(ctx, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
