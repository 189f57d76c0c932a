package validator

import (
	"strings"
	"time"

	"payment-gateway/internal/domain"
)

const (
	ReasonCardNumber  = "Invalid Card Number"
	ReasonExpiryMonth = "Invalid expiry month"
	ReasonExpiryYear  = "Invalid expiry year"
	ReasonExpired     = "Expiry is in the past"
	ReasonCurrency    = "Currency is invalid"
	ReasonAmount      = "Amount is invalid"
	ReasonCVV         = "CVV is invalid"
)

// Result is the outcome of validating a payment request. An empty Reason
// means the request passed.
type Result struct {
	Reason string
}

func (r Result) Valid() bool {
	return r.Reason == ""
}

func fail(reason string) Result {
	return Result{Reason: reason}
}

// Validator checks payment requests against the gateway's acceptance rules.
// It holds no per-request state and is safe for concurrent use.
type Validator struct {
	currencies map[string]struct{}
	loc        *time.Location
	now        func() time.Time
}

type Option func(*Validator)

// WithClock overrides the source of "today" used by the expiry check.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLocation sets the time zone in which "today" is evaluated. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

func New(supportedCurrencies []string, opts ...Option) *Validator {
	v := &Validator{
		currencies: make(map[string]struct{}, len(supportedCurrencies)),
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, c := range supportedCurrencies {
		v.currencies[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the rules in a fixed order and reports the first failure.
func (v *Validator) Validate(req domain.PaymentRequest) Result {
	if n := len(req.CardNumber); n < 14 || n > 19 || !allDigits(req.CardNumber) {
		return fail(ReasonCardNumber)
	}

	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 {
		return fail(ReasonExpiryMonth)
	}

	if req.ExpiryYear < 0 {
		return fail(ReasonExpiryYear)
	}

	if v.expired(req.ExpiryYear, req.ExpiryMonth) {
		return fail(ReasonExpired)
	}

	if len(req.Currency) != 3 || !v.supported(req.Currency) {
		return fail(ReasonCurrency)
	}

	if req.Amount <= 0 {
		return fail(ReasonAmount)
	}

	if n := len(req.CVV); n < 3 || n > 4 || !allDigits(req.CVV) {
		return fail(ReasonCVV)
	}

	return Result{}
}

// expired reports whether the last calendar day of year/month is before today.
// A card is valid through the final day of its expiry month.
func (v *Validator) expired(year, month int) bool {
	now := v.now().In(v.loc)
	// years are compared first so time.Date never sees an out-of-range year
	if year != now.Year() {
		return year < now.Year()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)
	// day 0 of the next month is the last day of this one
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, v.loc)
	return lastDay.Before(today)
}

func (v *Validator) supported(currency string) bool {
	_, ok := v.currencies[strings.ToUpper(currency)]
	return ok
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
