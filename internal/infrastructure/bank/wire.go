package bank

// Wire format of the acquiring bank's POST /payments endpoint.

type authorizationRequestBody struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

type authorizationResponseBody struct {
	Authorized        *bool   `json:"authorized"`
	AuthorizationCode *string `json:"authorization_code"`
}

type errorResponseBody struct {
	ErrorMessage string `json:"error_message"`
}
