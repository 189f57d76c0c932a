package bank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"payment-gateway/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func authRequest(pan string) domain.AuthorizationRequest {
	return domain.AuthorizationRequest{
		CardNumber: pan,
		ExpiryDate: "04/2030",
		Currency:   "GBP",
		Amount:     100,
		CVV:        "123",
	}
}

func newClient(url string) AcquiringBank {
	return NewHTTPAcquiringBank(url, time.Second, time.Second, zap.NewNop())
}

func TestAuthorize_AgainstSimulator(t *testing.T) {
	sim := NewSimulator()
	srv := httptest.NewServer(sim.Handler())
	defer srv.Close()

	client := newClient(srv.URL + "/payments")
	ctx := context.Background()

	t.Run("odd last digit is authorized", func(t *testing.T) {
		res := client.Authorize(ctx, authRequest("2222405343248877"))
		require.Equal(t, domain.DecisionAuthorized, res.Decision)
		require.NotEmpty(t, res.AuthorizationCode)
	})

	t.Run("even last digit is declined", func(t *testing.T) {
		res := client.Authorize(ctx, authRequest("2222405343248112"))
		require.Equal(t, domain.DecisionNotAuthorized, res.Decision)
		require.Empty(t, res.AuthorizationCode)
	})

	t.Run("trailing zero is no decision", func(t *testing.T) {
		res := client.Authorize(ctx, authRequest("2222405343248110"))
		require.Equal(t, domain.DecisionNone, res.Decision)
	})

	t.Run("missing field is no decision", func(t *testing.T) {
		req := authRequest("2222405343248877")
		req.CVV = ""
		res := client.Authorize(ctx, req)
		require.Equal(t, domain.DecisionNone, res.Decision)
	})

	served := sim.Served()
	require.Equal(t, 2, served[http.StatusOK])
	require.Equal(t, 1, served[http.StatusServiceUnavailable])
	require.Equal(t, 1, served[http.StatusBadRequest])
}

func TestAuthorize_SendsWireFormat(t *testing.T) {
	var (
		got         map[string]any
		method      string
		contentType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, contentType = r.Method, r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"authorized":true,"authorization_code":"AUTH123"}`))
	}))
	defer srv.Close()

	res := newClient(srv.URL).Authorize(context.Background(), authRequest("2222405343248877"))

	require.Equal(t, domain.AuthorizationResult{Decision: domain.DecisionAuthorized, AuthorizationCode: "AUTH123"}, res)
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "2222405343248877", got["card_number"])
	require.Equal(t, "04/2030", got["expiry_date"])
	require.Equal(t, "GBP", got["currency"])
	require.Equal(t, float64(100), got["amount"])
	require.Equal(t, "123", got["cvv"])
}

func TestAuthorize_FailuresCollapseToNoDecision(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"payment required", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"authorized":`))
		}},
		{"no authorized flag", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"authorization_code":"X"}`))
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(c.handler)
			defer srv.Close()

			res := newClient(srv.URL).Authorize(context.Background(), authRequest("2222405343248877"))
			require.Equal(t, domain.DecisionNone, res.Decision)
		})
	}
}

func TestAuthorize_DoesNotFollowRedirects(t *testing.T) {
	var hits atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"authorized":true,"authorization_code":"AUTH123"}`))
	}))
	defer target.Close()

	for _, code := range []int{http.StatusTemporaryRedirect, http.StatusPermanentRedirect, http.StatusFound} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			srv := httptest.NewServer(http.RedirectHandler(target.URL, code))
			defer srv.Close()

			res := newClient(srv.URL).Authorize(context.Background(), authRequest("2222405343248877"))
			require.Equal(t, domain.DecisionNone, res.Decision)
		})
	}
	require.Zero(t, hits.Load())
}

func TestAuthorize_TransportErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		res := newClient(url).Authorize(context.Background(), authRequest("2222405343248877"))
		require.Equal(t, domain.DecisionNone, res.Decision)
	})

	t.Run("read timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		client := NewHTTPAcquiringBank(srv.URL, time.Second, 50*time.Millisecond, zap.NewNop())
		res := client.Authorize(context.Background(), authRequest("2222405343248877"))
		require.Equal(t, domain.DecisionNone, res.Decision)
	})
}
