package models

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// BlockClientRequest запрос на блокировку клиента
type BlockClientRequest struct {
	Reason string `json:"reason"`
}

// ClientResponse данные клиента
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientSummaryResponse сводка по клиенту для владельца
type ClientSummaryResponse struct {
	Client         ClientResponse `json:"client"`
	NoShowCount    int            `json:"noShowCount"`
	Blocked        bool           `json:"blocked"`
	BlockSuggested bool           `json:"blockSuggested"`
}

// BlockedClientResponse запись о блокировке
type BlockedClientResponse struct {
	ClientID    int64     `json:"clientId"`
	NoShowCount int       `json:"noShowCount"`
	Reason      string    `json:"reason,omitempty"`
	BlockedAt   time.Time `json:"blockedAt"`
}

// BlockedClientListResponse список заблокированных клиентов
type BlockedClientListResponse struct {
	Clients []BlockedClientResponse `json:"clients"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainBlockedClient конвертирует domain модель в DTO
func FromDomainBlockedClient(b *domain.BlockedClient) BlockedClientResponse {
	return BlockedClientResponse{
		ClientID:    b.ClientID,
		NoShowCount: b.NoShowCount,
		Reason:      b.Reason,
		BlockedAt:   b.BlockedAt,
	}
}

// FromDomainBlockedClientList конвертирует список в DTO
func FromDomainBlockedClientList(list []*domain.BlockedClient) *BlockedClientListResponse {
	resp := &BlockedClientListResponse{Clients: make([]BlockedClientResponse, 0, len(list))}
	for _, b := range list {
		resp.Clients = append(resp.Clients, FromDomainBlockedClient(b))
	}
	return resp
}
