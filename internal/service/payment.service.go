package service

import (
	"context"
	"fmt"
	"time"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/infrastructure/bank"
	"payment-gateway/internal/repo"
	"payment-gateway/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentValidator interface {
	Validate(req domain.PaymentRequest) validator.Result
}

type PaymentService interface {
	// ProcessPayment validates req, asks the bank when validation passes and
	// stores the resulting record. A rejected, declined or unanswered payment
	// is still a successful call; the error is reserved for store failures.
	ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error)
	// GetPayment returns domain.ErrPaymentNotFound for unknown ids.
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
}

type paymentService struct {
	paymentRepo repo.PaymentRepo
	validator   PaymentValidator
	bank        bank.AcquiringBank
	logger      *zap.Logger
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repo.PaymentRepo,
	validator PaymentValidator,
	bank bank.AcquiringBank,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		validator:   validator,
		bank:        bank,
		logger:      logger.With(zap.String("component", "payment_service")),
		now:         time.Now,
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	id := uuid.New()
	log := s.logger.With(
		zap.String("payment_id", id.String()),
		zap.Int("card_last_four", domain.LastFour(req.CardNumber)),
	)

	validation := s.validator.Validate(req)
	result := domain.NoDecision()

	if validation.Valid() {
		result = s.bank.Authorize(ctx, domain.NewAuthorizationRequest(req))
	} else {
		log.Warn("payment validation failed", zap.String("reason", validation.Reason))
	}

	status := ResolveStatus(validation, result)
	payment := domain.NewPayment(id, status, req, s.now().UTC())

	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("storing payment %s: %w", id, err)
	}

	log.Info("payment processed",
		zap.String("status", string(status)),
		zap.String("bank_decision", string(result.Decision)),
	)
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding payment %s: %w", id, err)
	}

	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}

	return payment, nil
}
