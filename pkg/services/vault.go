package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// VaultClient wraps the external secret store. Every call may fail due
// to transient unavailability; failures surface as VaultUnavailableError
// with no retry logic of their own.
type VaultClient interface {
	CreateSecret(ctx context.Context, value, name, description string) (string, error)
	ReadSecret(ctx context.Context, secretRef string) (string, error)
	DeleteSecret(ctx context.Context, secretRef string) error
}

// VaultCardData is the sensitive card payload stored in the vault.
type VaultCardData struct {
	CardNumber string `json:"cardNumber"`
	CVV        string `json:"cvv"`
}

// VaultBankData is the sensitive bank payload stored in the vault.
type VaultBankData struct {
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
}

type httpVaultClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewVaultClient builds a client for the secret-store RPC endpoints.
func NewVaultClient(baseURL, apiKey string) VaultClient {
	return &httpVaultClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type createSecretRequest struct {
	SecretValue       string `json:"secret_value"`
	SecretName        string `json:"secret_name"`
	SecretDescription string `json:"secret_description"`
}

type createSecretResponse struct {
	SecretID string `json:"secret_id"`
}

type secretRefRequest struct {
	SecretID string `json:"secret_id"`
}

type readSecretResponse struct {
	SecretValue string `json:"secret_value"`
}

func (c *httpVaultClient) CreateSecret(ctx context.Context, value, name, description string) (string, error) {
	body, err := c.call(ctx, "create_vault_secret", createSecretRequest{
		SecretValue:       value,
		SecretName:        name,
		SecretDescription: description,
	})
	if err != nil {
		return "", &VaultUnavailableError{Op: "create_secret", Err: err}
	}

	var res createSecretResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", &VaultUnavailableError{Op: "create_secret", Err: errors.Wrap(err, "decoding response")}
	}
	if res.SecretID == "" {
		return "", &VaultUnavailableError{Op: "create_secret", Err: errors.New("empty secret id in response")}
	}

	return res.SecretID, nil
}

// ReadSecret is not exercised by the dashboard flows; it exists for
// server-side payment processing against stored payloads.
func (c *httpVaultClient) ReadSecret(ctx context.Context, secretRef string) (string, error) {
	body, err := c.call(ctx, "get_vault_secret", secretRefRequest{SecretID: secretRef})
	if err != nil {
		return "", &VaultUnavailableError{Op: "read_secret", Err: err}
	}

	var res readSecretResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", &VaultUnavailableError{Op: "read_secret", Err: errors.Wrap(err, "decoding response")}
	}

	return res.SecretValue, nil
}

func (c *httpVaultClient) DeleteSecret(ctx context.Context, secretRef string) error {
	_, err := c.call(ctx, "delete_vault_secret", secretRefRequest{SecretID: secretRef})
	if err != nil {
		return &VaultUnavailableError{Op: "delete_secret", Err: err}
	}
	return nil
}

func (c *httpVaultClient) call(ctx context.Context, rpc string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}

	url := fmt.Sprintf("%s/rpc/%s", c.baseURL, rpc)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("vault rpc %s returned %s", rpc, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	return body, nil
}
