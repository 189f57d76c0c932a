package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"payment-gateway/internal/domain"

	"go.uber.org/zap"
)

// AcquiringBank asks the acquiring bank to authorize a charge. It never
// returns an error: every failure to obtain an answer comes back as
// domain.DecisionNone.
type AcquiringBank interface {
	Authorize(ctx context.Context, req domain.AuthorizationRequest) domain.AuthorizationResult
}

type httpAcquiringBank struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

const maxLoggedBody = 4 << 10

// NewHTTPAcquiringBank returns an adapter that performs exactly one POST per
// authorization. There are no retries; connectTimeout bounds dialing and
// readTimeout bounds the wait for the response.
func NewHTTPAcquiringBank(url string, connectTimeout, readTimeout time.Duration, logger *zap.Logger) AcquiringBank {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext
	transport.ResponseHeaderTimeout = readTimeout

	return &httpAcquiringBank{
		url: url,
		client: &http.Client{
			Transport: transport,
			Timeout:   connectTimeout + readTimeout,
			// a redirect would replay the POST; 3xx is answered as no decision
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.With(zap.String("component", "acquiring_bank")),
	}
}

func (b *httpAcquiringBank) Authorize(ctx context.Context, req domain.AuthorizationRequest) domain.AuthorizationResult {
	payload, err := json.Marshal(authorizationRequestBody{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	})
	if err != nil {
		b.logger.Warn("encoding bank request", zap.Error(err))
		return domain.NoDecision()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		b.logger.Warn("building bank request", zap.Error(err))
		return domain.NoDecision()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		b.logger.Warn("unexpected error calling bank", zap.Error(err))
		return domain.NoDecision()
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return b.decode(resp.Body)
	case http.StatusBadRequest:
		b.logger.Warn("bad request from bank", zap.String("body", readBody(resp.Body)))
	case http.StatusServiceUnavailable:
		b.logger.Warn("bank unavailable", zap.String("body", readBody(resp.Body)))
	default:
		b.logger.Warn("unexpected bank response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", readBody(resp.Body)),
		)
	}
	return domain.NoDecision()
}

func (b *httpAcquiringBank) decode(body io.Reader) domain.AuthorizationResult {
	var out authorizationResponseBody
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		b.logger.Warn("decoding bank response", zap.Error(err))
		return domain.NoDecision()
	}
	if out.Authorized == nil {
		b.logger.Warn("bank response has no authorized flag")
		return domain.NoDecision()
	}

	res := domain.AuthorizationResult{Decision: domain.DecisionNotAuthorized}
	if *out.Authorized {
		res.Decision = domain.DecisionAuthorized
	}
	if out.AuthorizationCode != nil {
		res.AuthorizationCode = *out.AuthorizationCode
	}
	return res
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxLoggedBody))
	return strings.TrimSpace(string(b))
}
