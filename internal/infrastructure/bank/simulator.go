package bank

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Simulator is a stand-in acquiring bank for local runs and tests. Its answer
// depends only on the card number's last digit:
//
//	odd   -> authorized, with a fresh authorization code
//	even  -> declined
//	0     -> 503 Service Unavailable
//
// Requests missing any required field get 400.
type Simulator struct {
	mu     sync.RWMutex
	served map[int]int
}

func NewSimulator() *Simulator {
	return &Simulator{served: make(map[int]int)}
}

// Register mounts the bank's POST /payments endpoint.
func (s *Simulator) Register(r gin.IRoutes) {
	r.POST("/payments", s.authorize)
}

// Handler returns a standalone router serving the simulator.
func (s *Simulator) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	s.Register(r)
	return r
}

type simulatorRequest struct {
	CardNumber *string `json:"card_number"`
	ExpiryDate *string `json:"expiry_date"`
	Currency   *string `json:"currency"`
	Amount     *int64  `json:"amount"`
	CVV        *string `json:"cvv"`
}

func (r simulatorRequest) complete() bool {
	for _, s := range []*string{r.CardNumber, r.ExpiryDate, r.Currency, r.CVV} {
		if s == nil || *s == "" {
			return false
		}
	}
	return r.Amount != nil
}

func (s *Simulator) authorize(c *gin.Context) {
	var req simulatorRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		s.respond(c, http.StatusBadRequest, errorResponseBody{
			ErrorMessage: "Not all required properties were sent in the request",
		})
		return
	}

	pan := *req.CardNumber
	last := pan[len(pan)-1]

	switch {
	case last == '0':
		s.respond(c, http.StatusServiceUnavailable, errorResponseBody{
			ErrorMessage: "Service unavailable",
		})
	case last >= '0' && last <= '9' && (last-'0')%2 == 1:
		code := uuid.NewString()
		authorized := true
		s.respond(c, http.StatusOK, authorizationResponseBody{
			Authorized:        &authorized,
			AuthorizationCode: &code,
		})
	default:
		authorized := false
		s.respond(c, http.StatusOK, authorizationResponseBody{Authorized: &authorized})
	}
}

func (s *Simulator) respond(c *gin.Context, status int, body any) {
	s.mu.Lock()
	s.served[status]++
	s.mu.Unlock()

	c.JSON(status, body)
}

// Served returns how many responses were sent, keyed by HTTP status.
func (s *Simulator) Served() map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]int, len(s.served))
	for k, v := range s.served {
		out[k] = v
	}
	return out
}
