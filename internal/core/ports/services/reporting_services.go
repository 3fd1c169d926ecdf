package services

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// ReportingSvcFacade exposes derived financial snapshots.
type ReportingSvcFacade interface {
	// GetCustomerSnapshot computes a customer's savings balance and the
	// derived position of every loan they hold.
	GetCustomerSnapshot(ctx context.Context, customerID string) (*domain.CustomerSnapshot, error)
}
