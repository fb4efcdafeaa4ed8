// internal/domain/click.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClickEvent is the immutable record of one accepted banner click.
type ClickEvent struct {
	ID        int64           `db:"id" json:"id"`
	AccountID int64           `db:"account_id" json:"accountId"`
	BannerID  string          `db:"banner_id" json:"bannerId"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	IPAddress *string         `db:"ip_address" json:"-"`
	UserAgent *string         `db:"user_agent" json:"-"`
	Timestamp time.Time       `db:"timestamp" json:"timestamp"`
}

// ClickOrigin carries the request metadata recorded with a click.
type ClickOrigin struct {
	IPAddress string
	UserAgent string
}

// NewClickEvent creates a new ClickEvent. The amount is fixed at creation.
func NewClickEvent(accountID int64, bannerID string, amount decimal.Decimal, origin ClickOrigin, now time.Time) *ClickEvent {
	return &ClickEvent{
		AccountID: accountID,
		BannerID:  bannerID,
		Amount:    amount,
		IPAddress: optional(origin.IPAddress),
		UserAgent: optional(origin.UserAgent),
		Timestamp: now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
