package domain

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentAuthorized PaymentStatus = "AUTHORIZED"
	PaymentDeclined   PaymentStatus = "DECLINED"
	PaymentRejected   PaymentStatus = "REJECTED"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRequest is the untrusted input of a payment attempt.
// Nothing is enforced here; see the validator package.
type PaymentRequest struct {
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	Currency    string
	Amount      int64
	CVV         string
}

// Payment is the finalized record of one attempt. It is created in its
// terminal status and never updated afterwards.
type Payment struct {
	ID                 uuid.UUID
	Status             PaymentStatus
	CardNumberLastFour int
	ExpiryMonth        int
	ExpiryYear         int
	Currency           string
	Amount             int64
	CreatedAt          time.Time
}

const lastFourLength = 4

// LastFour returns the numeric value of the last four characters of a card
// number. Shorter numbers are used whole. Empty or non-numeric input yields 0.
func LastFour(cardNumber string) int {
	if cardNumber == "" {
		return 0
	}

	digits := []rune(cardNumber)
	if len(digits) > lastFourLength {
		digits = digits[len(digits)-lastFourLength:]
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0
		}
	}

	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return n
}

// NewPayment builds the masked record for a request. The raw card number does
// not leave this function.
func NewPayment(id uuid.UUID, status PaymentStatus, req PaymentRequest, now time.Time) *Payment {
	return &Payment{
		ID:                 id,
		Status:             status,
		CardNumberLastFour: LastFour(req.CardNumber),
		ExpiryMonth:        req.ExpiryMonth,
		ExpiryYear:         req.ExpiryYear,
		Currency:           req.Currency,
		Amount:             req.Amount,
		CreatedAt:          now,
	}
}
