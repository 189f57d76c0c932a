package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"payment-gateway/internal/infrastructure/bank"
	"payment-gateway/internal/logger"
	"payment-gateway/internal/repo"
	"payment-gateway/internal/server"
	"payment-gateway/internal/service"
	"payment-gateway/internal/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type result struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	CardNumberLastFour int    `json:"cardNumberLastFour"`
}

// sample cards cover every simulator branch plus a few validation failures
var cards = []string{
	"2222405343248877", // odd: authorized
	"2222405343248112", // even: declined
	"2222405343248110", // trailing zero: bank unavailable
	"4111111111111",    // too short
	"41111111111111",
	"4111111111111111111",
	"4111111111abc111",
	"5555555555554443",
	"5555555555554444",
	"5555555555554440",
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	zl := logger.New(logger.Config{Level: "warn", Format: "console"})
	defer zl.Sync()

	sim := bank.NewSimulator()
	bankSrv := server.New("127.0.0.1:0", sim.Handler(), zl)
	if err := bankSrv.Start(); err != nil {
		zl.Fatal("starting bank simulator", zap.Error(err))
	}

	paymentService := service.NewPaymentService(
		repo.NewMemoryPaymentRepo(),
		validator.New([]string{"USD", "GBP", "EUR"}),
		bank.NewHTTPAcquiringBank("http://"+bankSrv.Addr+"/payments", 2*time.Second, 2*time.Second, zl),
		zl,
	)
	gatewaySrv := server.New("127.0.0.1:0", server.NewRouter(server.RouterConfig{
		Payments: paymentService,
		Logger:   zl,
	}), zl)
	if err := gatewaySrv.Start(); err != nil {
		zl.Fatal("starting gateway", zap.Error(err))
	}
	base := "http://" + gatewaySrv.Addr

	fmt.Printf("--- STARTING SIMULATION (%d PAYMENTS) ---\n", 2*len(cards))
	counts := make(map[string]int)
	for i := 0; i < 2*len(cards); i++ {
		card := cards[i%len(cards)]
		body, err := json.Marshal(map[string]any{
			"cardNumber":  card,
			"expiryMonth": 4,
			"expiryYear":  time.Now().Year() + 3,
			"currency":    "GBP",
			"amount":      100 + i,
			"cvv":         "123",
		})
		if err != nil {
			zl.Error("encoding payment", zap.Error(err))
			continue
		}

		// 1. Create
		fmt.Printf("[%d] Paying with card ending %s ... ", i+1, tail(card))
		created, err := call(http.MethodPost, base+"/payments", body)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		fmt.Printf("%s (id %s)\n", created.Status, created.ID)
		counts[created.Status]++

		// 2. Look it up again; the stored record must match what we were given
		stored, err := call(http.MethodGet, base+"/payments/"+created.ID, nil)
		if err != nil {
			fmt.Printf("    -> lookup FAILED: %v\n", err)
			continue
		}
		fmt.Printf("    -> Stored: %s, last four %04d\n", stored.Status, stored.CardNumberLastFour)
		fmt.Println("---------------------------------------------------")
	}

	fmt.Printf("Outcomes: %v\n", counts)
	fmt.Printf("Bank responses by status: %v\n", sim.Served())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gatewaySrv.Shutdown(ctx); err != nil {
		zl.Error("stopping gateway", zap.Error(err))
	}
	if err := bankSrv.Shutdown(ctx); err != nil {
		zl.Error("stopping bank simulator", zap.Error(err))
	}
}

func call(method, url string, body []byte) (*result, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var r result
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func tail(card string) string {
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}
