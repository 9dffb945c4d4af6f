package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	clientRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/client"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
)

// Service сервис управления клиентами и блокировками
// Блокировка всегда выполняется владельцем вручную
type Service struct {
	clientRepo      ClientRepository
	noShows         NoShowCounter
	noShowThreshold int
	logger          Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, noShows NoShowCounter, noShowThreshold int, logger Logger) *Service {
	if noShowThreshold <= 0 {
		noShowThreshold = domain.DefaultNoShowBlockThreshold
	}
	return &Service{
		clientRepo:      clientRepo,
		noShows:         noShows,
		noShowThreshold: noShowThreshold,
		logger:          logger,
	}
}

// GetSummary получает клиента, число неявок и статус блокировки
func (s *Service) GetSummary(ctx context.Context, businessID, clientID int64) (*models.ClientSummaryResponse, error) {
	s.logger.Info("GetSummary: client id=%d, business=%d", clientID, businessID)

	client, err := s.getClient(ctx, businessID, clientID, "GetSummary")
	if err != nil {
		return nil, err
	}

	count, err := s.noShows.CountNoShows(ctx, businessID, clientID)
	if err != nil {
		s.logger.Error("GetSummary: failed to count no-shows for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetSummary - count no-shows: %w", ErrInternal, err)
	}

	blocked, err := s.clientRepo.IsBlocked(ctx, businessID, clientID)
	if err != nil {
		s.logger.Error("GetSummary: failed to check block for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetSummary - check block: %w", ErrInternal, err)
	}

	return &models.ClientSummaryResponse{
		Client:         models.FromDomainClient(client),
		NoShowCount:    count,
		Blocked:        blocked,
		BlockSuggested: !blocked && domain.ShouldSuggestBlock(count, s.noShowThreshold),
	}, nil
}

// Block блокирует клиента; повторный вызов обновляет причину и счетчик неявок
func (s *Service) Block(ctx context.Context, businessID, clientID int64, req *models.BlockClientRequest) (*models.BlockedClientResponse, error) {
	s.logger.Info("Block: client id=%d, business=%d", clientID, businessID)

	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxBlockReasonLength {
		s.logger.Warn("Block: reason is too long for client id=%d", clientID)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	if _, err := s.getClient(ctx, businessID, clientID, "Block"); err != nil {
		return nil, err
	}

	count, err := s.noShows.CountNoShows(ctx, businessID, clientID)
	if err != nil {
		s.logger.Error("Block: failed to count no-shows for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: Block - count no-shows: %w", ErrInternal, err)
	}

	blocked, err := s.clientRepo.Block(ctx, &domain.BlockedClient{
		BusinessID:  businessID,
		ClientID:    clientID,
		NoShowCount: count,
		Reason:      reason,
	})
	if err != nil {
		s.logger.Error("Block: repository error for client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: Block - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Block: client id=%d blocked in business=%d (no-shows=%d)", clientID, businessID, count)
	resp := models.FromDomainBlockedClient(blocked)
	return &resp, nil
}

// Unblock снимает блокировку; снятие несуществующей блокировки не ошибка
func (s *Service) Unblock(ctx context.Context, businessID, clientID int64) error {
	s.logger.Info("Unblock: client id=%d, business=%d", clientID, businessID)

	if err := s.clientRepo.Unblock(ctx, businessID, clientID); err != nil {
		s.logger.Error("Unblock: repository error for client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: Unblock - repository error: %w", ErrInternal, err)
	}

	return nil
}

// ListBlocked получает заблокированных клиентов бизнеса
func (s *Service) ListBlocked(ctx context.Context, businessID int64) (*models.BlockedClientListResponse, error) {
	s.logger.Info("ListBlocked: business=%d", businessID)

	list, err := s.clientRepo.ListBlocked(ctx, businessID)
	if err != nil {
		s.logger.Error("ListBlocked: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListBlocked - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBlockedClientList(list), nil
}

func (s *Service) getClient(ctx context.Context, businessID, clientID int64, op string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, businessID, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: client id=%d not found in business=%d", op, clientID, businessID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("%s: repository error for client id=%d: %v", op, clientID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return client, nil
}
