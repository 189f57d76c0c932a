package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLastFour(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"4111111111111111", 1111},
		{"4111111111110007", 7},
		{"2222405343248877", 8877},
		{"123", 123},
		{"9", 9},
		{"", 0},
		{"41111111111111ab", 0},
		{"4111111111111-11", 0},
		{"411111111111+111", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, LastFour(c.in), "LastFour(%q)", c.in)
	}
}

func TestNewPayment_EchoesRequestAndMasksCard(t *testing.T) {
	id := uuid.New()
	now := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC)
	req := PaymentRequest{
		CardNumber:  "4111111111111234",
		ExpiryMonth: 4,
		ExpiryYear:  2031,
		Currency:    "GBP",
		Amount:      1050,
		CVV:         "123",
	}

	p := NewPayment(id, PaymentDeclined, req, now)

	require.Equal(t, id, p.ID)
	require.Equal(t, PaymentDeclined, p.Status)
	require.Equal(t, 1234, p.CardNumberLastFour)
	require.Equal(t, 4, p.ExpiryMonth)
	require.Equal(t, 2031, p.ExpiryYear)
	require.Equal(t, "GBP", p.Currency)
	require.Equal(t, int64(1050), p.Amount)
	require.Equal(t, now, p.CreatedAt)
}

func TestNewAuthorizationRequest(t *testing.T) {
	ar := NewAuthorizationRequest(PaymentRequest{
		CardNumber:  "2222405343248877",
		ExpiryMonth: 4,
		ExpiryYear:  2025,
		Currency:    "GBP",
		Amount:      100,
		CVV:         "123",
	})

	require.Equal(t, "2222405343248877", ar.CardNumber)
	require.Equal(t, "04/2025", ar.ExpiryDate)
	require.Equal(t, "GBP", ar.Currency)
	require.Equal(t, int64(100), ar.Amount)
	require.Equal(t, "123", ar.CVV)
}
