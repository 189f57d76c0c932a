package server

import (
	"payment-gateway/internal/domain"

	"github.com/google/uuid"
)

type paymentRequest struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int32  `json:"expiryMonth"`
	ExpiryYear  int32  `json:"expiryYear"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
}

func (r paymentRequest) toDomain() domain.PaymentRequest {
	return domain.PaymentRequest{
		CardNumber:  r.CardNumber,
		ExpiryMonth: int(r.ExpiryMonth),
		ExpiryYear:  int(r.ExpiryYear),
		Currency:    r.Currency,
		Amount:      r.Amount,
		CVV:         r.CVV,
	}
}

type paymentResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Status             domain.PaymentStatus `json:"status"`
	CardNumberLastFour int                  `json:"cardNumberLastFour"`
	ExpiryMonth        int                  `json:"expiryMonth"`
	ExpiryYear         int                  `json:"expiryYear"`
	Currency           string               `json:"currency"`
	Amount             int64                `json:"amount"`
}

func newPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:                 p.ID,
		Status:             p.Status,
		CardNumberLastFour: p.CardNumberLastFour,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           p.Currency,
		Amount:             p.Amount,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}
