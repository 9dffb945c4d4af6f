package domain

import (
	"strings"
	"time"
	"unicode"
)

// Client is an end customer of a business; Phone is the natural identity key
type Client struct {
	ID         int64
	BusinessID int64
	Name       string
	Phone      string
	CreatedAt  time.Time
}

// BlockedClient bars a client from creating new appointments at a business
type BlockedClient struct {
	BusinessID  int64
	ClientID    int64
	NoShowCount int
	Reason      string
	BlockedAt   time.Time
}

// ClientIdentity is the contact info entered during booking
type ClientIdentity struct {
	Name  string
	Phone string
}

// NormalizePhone keeps digits only so "+55 (11) 99999-9999" and "5511999999999" match
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ShouldSuggestBlock returns true once the no-show count reaches the threshold
func ShouldSuggestBlock(noShowCount, threshold int) bool {
	return threshold > 0 && noShowCount >= threshold
}
