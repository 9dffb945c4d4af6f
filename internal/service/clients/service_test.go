package clients

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	clientRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/client"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockClients struct{ mock.Mock }

func (m *mockClients) GetByID(ctx context.Context, businessID, id int64) (*domain.Client, error) {
	args := m.Called(ctx, businessID, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

func (m *mockClients) IsBlocked(ctx context.Context, businessID, clientID int64) (bool, error) {
	args := m.Called(ctx, businessID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *mockClients) Block(ctx context.Context, b *domain.BlockedClient) (*domain.BlockedClient, error) {
	args := m.Called(ctx, b)
	res, _ := args.Get(0).(*domain.BlockedClient)
	return res, args.Error(1)
}

func (m *mockClients) Unblock(ctx context.Context, businessID, clientID int64) error {
	return m.Called(ctx, businessID, clientID).Error(0)
}

func (m *mockClients) ListBlocked(ctx context.Context, businessID int64) ([]*domain.BlockedClient, error) {
	args := m.Called(ctx, businessID)
	list, _ := args.Get(0).([]*domain.BlockedClient)
	return list, args.Error(1)
}

type mockNoShows struct{ mock.Mock }

func (m *mockNoShows) CountNoShows(ctx context.Context, businessID, clientID int64) (int, error) {
	args := m.Called(ctx, businessID, clientID)
	return args.Int(0), args.Error(1)
}

var maria = &domain.Client{ID: 7, BusinessID: 1, Name: "Maria", Phone: "5511999999999"}

func TestGetSummary(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		blocked   bool
		suggested bool
	}{
		{name: "clean history", count: 0},
		{name: "reached threshold", count: 2, suggested: true},
		{name: "already blocked", count: 3, blocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := &mockClients{}
			noShows := &mockNoShows{}
			clients.On("GetByID", mock.Anything, int64(1), int64(7)).Return(maria, nil)
			clients.On("IsBlocked", mock.Anything, int64(1), int64(7)).Return(tt.blocked, nil)
			noShows.On("CountNoShows", mock.Anything, int64(1), int64(7)).Return(tt.count, nil)

			resp, err := NewService(clients, noShows, 2, logger.Nop()).GetSummary(context.Background(), 1, 7)
			require.NoError(t, err)
			assert.Equal(t, "Maria", resp.Client.Name)
			assert.Equal(t, tt.count, resp.NoShowCount)
			assert.Equal(t, tt.blocked, resp.Blocked)
			assert.Equal(t, tt.suggested, resp.BlockSuggested)
		})
	}
}

func TestGetSummary_NotFound(t *testing.T) {
	clients := &mockClients{}
	clients.On("GetByID", mock.Anything, int64(2), int64(7)).Return(nil, clientRepo.ErrClientNotFound)

	_, err := NewService(clients, &mockNoShows{}, 2, logger.Nop()).GetSummary(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestBlock(t *testing.T) {
	clients := &mockClients{}
	noShows := &mockNoShows{}
	blockedAt := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	clients.On("GetByID", mock.Anything, int64(1), int64(7)).Return(maria, nil)
	noShows.On("CountNoShows", mock.Anything, int64(1), int64(7)).Return(2, nil)
	clients.On("Block", mock.Anything, mock.MatchedBy(func(b *domain.BlockedClient) bool {
		return b.BusinessID == 1 && b.ClientID == 7 && b.NoShowCount == 2 && b.Reason == "faltou duas vezes"
	})).Return(&domain.BlockedClient{BusinessID: 1, ClientID: 7, NoShowCount: 2, Reason: "faltou duas vezes", BlockedAt: blockedAt}, nil)

	resp, err := NewService(clients, noShows, 2, logger.Nop()).
		Block(context.Background(), 1, 7, &models.BlockClientRequest{Reason: "  faltou duas vezes  "})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Equal(t, blockedAt, resp.BlockedAt)
	clients.AssertExpectations(t)
}

func TestBlock_Validation(t *testing.T) {
	clients := &mockClients{}

	_, err := NewService(clients, &mockNoShows{}, 2, logger.Nop()).
		Block(context.Background(), 1, 7, &models.BlockClientRequest{Reason: strings.Repeat("x", 501)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	clients.AssertNotCalled(t, "Block", mock.Anything, mock.Anything)
}

func TestUnblock(t *testing.T) {
	clients := &mockClients{}
	clients.On("Unblock", mock.Anything, int64(1), int64(7)).Return(nil).Twice()
	s := NewService(clients, &mockNoShows{}, 2, logger.Nop())

	require.NoError(t, s.Unblock(context.Background(), 1, 7))
	require.NoError(t, s.Unblock(context.Background(), 1, 7))

	clients.ExpectedCalls = nil
	clients.On("Unblock", mock.Anything, int64(1), int64(8)).Return(errors.New("db down"))
	assert.ErrorIs(t, s.Unblock(context.Background(), 1, 8), ErrInternal)
}

func TestListBlocked(t *testing.T) {
	clients := &mockClients{}
	clients.On("ListBlocked", mock.Anything, int64(1)).Return([]*domain.BlockedClient{
		{BusinessID: 1, ClientID: 7, NoShowCount: 2},
		{BusinessID: 1, ClientID: 9, NoShowCount: 0, Reason: "comportamento"},
	}, nil)

	resp, err := NewService(clients, &mockNoShows{}, 2, logger.Nop()).ListBlocked(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Clients, 2)
	assert.Equal(t, "comportamento", resp.Clients[1].Reason)
}
