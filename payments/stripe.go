package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zoro-store/zoro-api/config"
)

// Client talks to the hosted checkout-session API.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		secretKey:  cfg.StripeSecretKey,
		baseURL:    strings.TrimRight(cfg.StripeAPIBaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SessionLine is one checkout line. UnitPrice is the server-looked-up catalog
// price; nothing client-supplied ever reaches the provider.
type SessionLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// UnitAmount is the unit price in the provider's smallest currency unit.
func (l SessionLine) UnitAmount() int64 {
	return int64(math.Round(l.UnitPrice * 100))
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateCheckoutSession opens a hosted payment session and returns its id and
// redirect URL. The full line list (with internal product ids) travels in the
// session metadata so the webhook can rebuild the order without another call.
func CreateCheckoutSession(c *Client, userID string, lines []SessionLine, successURL, cancelURL string) (string, string, error) {
	if c.secretKey == "" {
		return "", "", fmt.Errorf("payment provider secret not configured")
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode session metadata: %w", err)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("client_reference_id", userID)
	form.Set("metadata[items]", string(itemsJSON))
	form.Add("payment_method_types[]", "card")

	for i, line := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmount(), 10))
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
		form.Set(prefix+"[price_data][product_data][metadata][product_id]", strconv.FormatUint(uint64(line.ProductID), 10))
		if strings.HasPrefix(line.Image, "http") {
			form.Set(prefix+"[price_data][product_data][images][]", line.Image)
		}
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach payment provider: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", "", fmt.Errorf("failed to parse provider response (%d): %s", resp.StatusCode, string(body))
	}
	if session.Error != nil {
		return "", "", fmt.Errorf("provider error: %s", session.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("provider API error (%d): %s", resp.StatusCode, string(body))
	}
	if session.URL == "" {
		return "", "", fmt.Errorf("provider returned empty payment URL")
	}

	return session.ID, session.URL, nil
}
