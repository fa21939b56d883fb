package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cypherlabdev/bet-ledger-service/internal/messaging"
	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// Ledger is an interface that abstracts the ledger engine's contracts.
// This allows for easier testing and mocking.
type Ledger interface {
	CreateOperation(ctx context.Context, req models.CreateOperationRequest) (uuid.UUID, error)
	EditPendingOperation(ctx context.Context, req models.EditOperationRequest) error
	SettleOperation(ctx context.Context, req models.SettleOperationRequest) error
	UpdateLegStatus(ctx context.Context, req models.UpdateLegStatusRequest) error
	DeleteLeg(ctx context.Context, userID, legID uuid.UUID) error
	DeleteOperation(ctx context.Context, userID, operationID uuid.UUID) error
	UpdateOperationDescription(ctx context.Context, userID, operationID uuid.UUID, description string) error
	CreateBankroll(ctx context.Context, req models.CreateBankrollRequest) (uuid.UUID, error)
}

// Cache is an interface that abstracts the listing cache.
type Cache interface {
	GetOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)
	SetOperations(ctx context.Context, userID uuid.UUID, ops []models.Operation) error
	GetBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error)
	SetBankrolls(ctx context.Context, userID uuid.UUID, bankrolls []models.Bankroll) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// Publisher is an interface that abstracts ledger event publication.
type Publisher interface {
	Publish(ctx context.Context, event messaging.OperationEvent) error
}

// Reader is the read-only store surface serving listings.
type Reader interface {
	ListOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)
	ListBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error)
}
