package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-ledger-service/internal/ledger"
	"github.com/cypherlabdev/bet-ledger-service/internal/messaging"
	"github.com/cypherlabdev/bet-ledger-service/internal/metrics"
	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// LedgerService orchestrates ledger mutations with cache invalidation and
// event publication, and serves listings cache-first. Cache and Kafka
// failures never fail a request; the database commit is the source of
// truth.
type LedgerService struct {
	ledger    Ledger
	reader    Reader
	cache     Cache
	publisher Publisher
	logger    zerolog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	ledger Ledger,
	reader Reader,
	cache Cache,
	publisher Publisher,
	logger zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		ledger:    ledger,
		reader:    reader,
		cache:     cache,
		publisher: publisher,
		logger:    logger.With().Str("component", "ledger_service").Logger(),
	}
}

// CreateOperation creates an operation and returns its id.
func (s *LedgerService) CreateOperation(ctx context.Context, req models.CreateOperationRequest) (uuid.UUID, error) {
	id, err := s.ledger.CreateOperation(ctx, req)
	if err != nil {
		s.countRejection(err)
		return uuid.Nil, err
	}

	metrics.OperationsCreated.WithLabelValues(string(req.Type)).Inc()
	s.afterMutation(ctx, req.UserID, messaging.OperationEvent{
		EventType:   messaging.EventOperationCreated,
		UserID:      req.UserID,
		OperationID: id,
	})
	return id, nil
}

// EditPendingOperation applies a pending-operation edit.
func (s *LedgerService) EditPendingOperation(ctx context.Context, req models.EditOperationRequest) error {
	if err := s.ledger.EditPendingOperation(ctx, req); err != nil {
		s.countRejection(err)
		return err
	}

	s.afterMutation(ctx, req.UserID, messaging.OperationEvent{
		EventType:   messaging.EventOperationEdited,
		UserID:      req.UserID,
		OperationID: req.OperationID,
	})
	return nil
}

// SettleOperation settles an operation.
func (s *LedgerService) SettleOperation(ctx context.Context, req models.SettleOperationRequest) error {
	if err := s.ledger.SettleOperation(ctx, req); err != nil {
		return err
	}

	metrics.OperationsSettled.WithLabelValues(string(req.Status)).Inc()
	s.afterMutation(ctx, req.UserID, messaging.OperationEvent{
		EventType:   messaging.EventOperationSettled,
		UserID:      req.UserID,
		OperationID: req.OperationID,
		Status:      string(req.Status),
	})
	return nil
}

// UpdateLegStatus resolves one leg ad hoc.
func (s *LedgerService) UpdateLegStatus(ctx context.Context, req models.UpdateLegStatusRequest) error {
	if err := s.ledger.UpdateLegStatus(ctx, req); err != nil {
		return err
	}

	s.afterMutation(ctx, req.UserID, messaging.OperationEvent{
		EventType: messaging.EventLegUpdated,
		UserID:    req.UserID,
		LegID:     req.LegID,
		Status:    string(req.Status),
	})
	return nil
}

// DeleteLeg deletes one leg.
func (s *LedgerService) DeleteLeg(ctx context.Context, userID, legID uuid.UUID) error {
	if err := s.ledger.DeleteLeg(ctx, userID, legID); err != nil {
		return err
	}

	s.afterMutation(ctx, userID, messaging.OperationEvent{
		EventType: messaging.EventLegDeleted,
		UserID:    userID,
		LegID:     legID,
	})
	return nil
}

// DeleteOperation deletes an operation with its legs.
func (s *LedgerService) DeleteOperation(ctx context.Context, userID, operationID uuid.UUID) error {
	if err := s.ledger.DeleteOperation(ctx, userID, operationID); err != nil {
		return err
	}

	s.afterMutation(ctx, userID, messaging.OperationEvent{
		EventType:   messaging.EventOperationDeleted,
		UserID:      userID,
		OperationID: operationID,
	})
	return nil
}

// UpdateOperationDescription updates an operation's description.
func (s *LedgerService) UpdateOperationDescription(ctx context.Context, userID, operationID uuid.UUID, description string) error {
	if err := s.ledger.UpdateOperationDescription(ctx, userID, operationID, description); err != nil {
		return err
	}

	// Descriptions show up in listings too.
	s.invalidate(ctx, userID)
	return nil
}

// CreateBankroll creates a bankroll and returns its id.
func (s *LedgerService) CreateBankroll(ctx context.Context, req models.CreateBankrollRequest) (uuid.UUID, error) {
	id, err := s.ledger.CreateBankroll(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}

	metrics.BankrollsCreated.Inc()
	s.afterMutation(ctx, req.UserID, messaging.OperationEvent{
		EventType:  messaging.EventBankrollCreated,
		UserID:     req.UserID,
		BankrollID: id,
	})
	return id, nil
}

// ListOperations returns the user's operations with legs, newest first,
// cache-first.
func (s *LedgerService) ListOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	if ops, err := s.cache.GetOperations(ctx, userID); err == nil {
		metrics.CacheHits.WithLabelValues("operations", "hit").Inc()
		return ops, nil
	}
	metrics.CacheHits.WithLabelValues("operations", "miss").Inc()

	ops, err := s.reader.ListOperations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	if err := s.cache.SetOperations(ctx, userID, ops); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to cache operations")
	}
	return ops, nil
}

// ListBankrolls returns the user's bankrolls, cache-first.
func (s *LedgerService) ListBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error) {
	if bankrolls, err := s.cache.GetBankrolls(ctx, userID); err == nil {
		metrics.CacheHits.WithLabelValues("bankrolls", "hit").Inc()
		return bankrolls, nil
	}
	metrics.CacheHits.WithLabelValues("bankrolls", "miss").Inc()

	bankrolls, err := s.reader.ListBankrolls(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bankrolls: %w", err)
	}

	if err := s.cache.SetBankrolls(ctx, userID, bankrolls); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to cache bankrolls")
	}
	return bankrolls, nil
}

// afterMutation invalidates the user's cached listings and publishes the
// ledger event. Both are best effort.
func (s *LedgerService) afterMutation(ctx context.Context, userID uuid.UUID, event messaging.OperationEvent) {
	s.invalidate(ctx, userID)

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Msg("failed to publish ledger event")
	}
}

func (s *LedgerService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to invalidate cache")
	}
}

func (s *LedgerService) countRejection(err error) {
	if errors.Is(err, ledger.ErrInsufficientBalance) {
		metrics.InsufficientBalanceRejections.Inc()
	}
}
