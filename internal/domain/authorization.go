package domain

import "fmt"

// Decision is the acquiring bank's answer to an authorization request.
type Decision string

const (
	DecisionAuthorized    Decision = "AUTHORIZED"
	DecisionNotAuthorized Decision = "NOT_AUTHORIZED"
	// DecisionNone means no decision was obtained from the bank.
	DecisionNone Decision = "NO_DECISION"
)

// AuthorizationRequest is what we send to the acquiring bank. Build it only
// from a request that already passed validation.
type AuthorizationRequest struct {
	CardNumber string
	ExpiryDate string
	Currency   string
	Amount     int64
	CVV        string
}

type AuthorizationResult struct {
	Decision          Decision
	AuthorizationCode string
}

// NoDecision is returned whenever the bank could not be asked or did not answer.
func NoDecision() AuthorizationResult {
	return AuthorizationResult{Decision: DecisionNone}
}

func NewAuthorizationRequest(req PaymentRequest) AuthorizationRequest {
	return AuthorizationRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: FormatExpiry(req.ExpiryMonth, req.ExpiryYear),
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	}
}

// FormatExpiry renders the bank's "MM/YYYY" expiry.
func FormatExpiry(month, year int) string {
	return fmt.Sprintf("%02d/%04d", month, year)
}
