package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// HTTPClient talks to the backend over its JSON HTTP API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *HTTPClient) SignUp(ctx context.Context, username, email string, password []byte) (string, error) {

	body := map[string]string{"username": username, "email": email, "password": string(password)}

	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user/signup", body, "", &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {

	body := map[string]string{"email": email, "password": string(password)}

	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user/login", body, "", &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*Profile, error) {

	var resp Profile
	if err := c.doJSON(ctx, http.MethodGet, "/user/me", nil, token, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// doJSON sends one request and decodes the response into out.
// Transport failures map to ErrUnavailable; HTTP statuses map to the
// package sentinels via mapStatus.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, token string, out any) error {

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AccessTokenHeaderName, token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {

	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrAccountExists
	case http.StatusBadRequest:
		if len(er.Errors) > 0 {
			msgs := make([]string, 0, len(er.Errors))
			for _, fe := range er.Errors {
				msgs = append(msgs, fe.Message)
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return ErrInvalidInput
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
