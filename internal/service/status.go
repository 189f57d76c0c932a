package service

import (
	"payment-gateway/internal/domain"
	"payment-gateway/internal/validator"
)

// ResolveStatus maps a validation outcome and the bank's answer to the
// terminal status of a payment. The bank result is ignored when validation
// failed.
func ResolveStatus(validation validator.Result, bank domain.AuthorizationResult) domain.PaymentStatus {
	if !validation.Valid() {
		return domain.PaymentRejected
	}

	switch bank.Decision {
	case domain.DecisionAuthorized:
		return domain.PaymentAuthorized
	case domain.DecisionNotAuthorized:
		return domain.PaymentDeclined
	default:
		return domain.PaymentRejected
	}
}
