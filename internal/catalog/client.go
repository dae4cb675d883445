// Package catalog is the client for the remote order/catalog service.
// The service confirms orders and owns the menu; this process never
// composes or prints a receipt for an order it did not accept.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// RequestTimeout bounds every upstream call.
const RequestTimeout = 30 * time.Second

var (
	ErrUnauthorized = errors.New("not authenticated with the order service")
	ErrForbidden    = errors.New("access to the order service denied")
	ErrNotFound     = errors.New("not found")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("order service unavailable")
)

// Client talks to the remote order/catalog REST API. All calls go
// through a circuit breaker so a dead upstream fails fast instead of
// stalling every checkout for the full timeout.
type Client struct {
	http    *resty.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

// NewClient returns a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(RequestTimeout).
			SetRetryCount(0),
		baseURL: baseURL,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "order-service",
			MaxRequests: 3,
			Interval:    15 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && ratio >= 0.6
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.WithFields(log.Fields{
					"circuit": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Info("circuit breaker state changed")
			},
		}),
	}
}

// SetToken sets the bearer token used on subsequent calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// do runs one request through the breaker. Only transport failures
// count as breaker failures; HTTP error statuses are upstream answers.
func (c *Client) do(fn func() (*resty.Response, error)) (*resty.Response, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("order service request: %w", err)
	}
	return out.(*resty.Response), nil
}

// statusErr maps common upstream statuses to sentinel errors.
func statusErr(resp *resty.Response) error {
	switch resp.StatusCode() {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	default:
		return fmt.Errorf("order service returned status %d", resp.StatusCode())
	}
}

// Login authenticates and returns the JWT to use on later calls.
func (c *Client) Login(username, password string) (string, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().
			SetBody(map[string]string{"username": username, "password": password}).
			Post(c.baseURL + "/auth/login")
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		if resp.StatusCode() == 401 {
			return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", statusErr(resp)
	}
	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("parse login response: %w", err)
	}
	token := body.Token
	if token == "" {
		token = body.AccessToken
	}
	if token == "" {
		return "", errors.New("login response carried no token")
	}
	return token, nil
}

// Categories lists the categories currently available for ordering.
func (c *Client) Categories() ([]Category, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().Get(c.baseURL + "/v1/categories/available")
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, statusErr(resp)
	}
	var cats []Category
	if err := json.Unmarshal(resp.Body(), &cats); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return cats, nil
}

// Products fetches the full menu and groups active foods by category
// name, each group sorted by item name.
func (c *Client) Products() (map[string][]MenuItem, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().Get(c.baseURL + "/v1/foods")
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, statusErr(resp)
	}
	var foods []Food
	if err := json.Unmarshal(resp.Body(), &foods); err != nil {
		return nil, fmt.Errorf("parse foods: %w", err)
	}

	menu := make(map[string][]MenuItem)
	for _, f := range foods {
		if !f.IsActive() || f.Name == "" {
			continue
		}
		cat := f.Category.Name
		if cat == "" {
			cat = "Altro"
		}
		menu[cat] = append(menu[cat], MenuItem{ID: f.ID, Name: f.Name, Price: f.Price})
	}
	for cat := range menu {
		items := menu[cat]
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}
	return menu, nil
}

// FoodsByCategory returns the raw list of available foods for one
// category, passed through for the web client.
func (c *Client) FoodsByCategory(categoryID int) (json.RawMessage, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().Get(fmt.Sprintf("%s/v1/foods/available/categories/%d", c.baseURL, categoryID))
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, statusErr(resp)
	}
	return json.RawMessage(resp.Body()), nil
}

// CreateOrder submits the order and returns the confirmation id. The
// caller must treat any error as fatal to the print cycle.
func (c *Client) CreateOrder(req OrderRequest) (int64, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			Post(c.baseURL + "/v1/orders")
	})
	if err != nil {
		return 0, err
	}
	switch resp.StatusCode() {
	case 200, 201:
	case 400:
		var body struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body(), &body)
		if body.Message == "" {
			body.Message = "invalid order data"
		}
		return 0, fmt.Errorf("order rejected: %s", body.Message)
	default:
		return 0, statusErr(resp)
	}

	var body struct {
		ID       json.Number `json:"id"`
		OrderID  json.Number `json:"order_id"`
		OrderID2 json.Number `json:"orderId"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, fmt.Errorf("parse order response: %w", err)
	}
	for _, n := range []json.Number{body.ID, body.OrderID, body.OrderID2} {
		if n != "" {
			id, err := n.Int64()
			if err != nil {
				return 0, fmt.Errorf("parse order id %q: %w", n, err)
			}
			return id, nil
		}
	}
	return 0, errors.New("order response carried no id")
}

// OrderByCode fetches one order by its confirmation code.
func (c *Client) OrderByCode(code string) (json.RawMessage, error) {
	return c.rawGet(c.baseURL + "/v1/orders/" + code)
}

// TodayOrders fetches all of today's orders.
func (c *Client) TodayOrders() (json.RawMessage, error) {
	return c.rawGet(c.baseURL + "/v1/orders/day/today")
}

// SearchDailyOrders searches today's orders by code, table or customer.
func (c *Client) SearchDailyOrders(value string) (json.RawMessage, error) {
	return c.rawGet(c.baseURL + "/v1/orders/search/daily/" + value)
}

func (c *Client) rawGet(url string) (json.RawMessage, error) {
	resp, err := c.do(func() (*resty.Response, error) {
		return c.http.R().Get(url)
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, statusErr(resp)
	}
	return json.RawMessage(resp.Body()), nil
}
