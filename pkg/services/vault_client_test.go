package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaultTestServer(t *testing.T) (*httptest.Server, map[string]string) {
	t.Helper()
	secrets := make(map[string]string)

	mux := http.NewServeMux()
	mux.HandleFunc("/rpc/create_vault_secret", func(w http.ResponseWriter, r *http.Request) {
		var req createSecretRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		secrets[req.SecretName] = req.SecretValue
		json.NewEncoder(w).Encode(createSecretResponse{SecretID: req.SecretName})
	})
	mux.HandleFunc("/rpc/get_vault_secret", func(w http.ResponseWriter, r *http.Request) {
		var req secretRefRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		value, ok := secrets[req.SecretID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(readSecretResponse{SecretValue: value})
	})
	mux.HandleFunc("/rpc/delete_vault_secret", func(w http.ResponseWriter, r *http.Request) {
		var req secretRefRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		delete(secrets, req.SecretID)
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, secrets
}

func TestVaultClientRoundTrip(t *testing.T) {
	server, secrets := vaultTestServer(t)
	client := NewVaultClient(server.URL, "test-key")
	ctx := context.Background()

	ref, err := client.CreateSecret(ctx, `{"cardNumber":"4242424242424242","cvv":"123"}`, "card_abc_1", "Card ending in 4242")
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
	assert.Len(t, secrets, 1)

	value, err := client.ReadSecret(ctx, ref)
	require.NoError(t, err)
	assert.Contains(t, value, "4242424242424242")

	require.NoError(t, client.DeleteSecret(ctx, ref))
	assert.Empty(t, secrets)
}

func TestVaultClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewVaultClient(server.URL, "")
	ctx := context.Background()

	_, err := client.CreateSecret(ctx, "value", "name", "desc")
	require.Error(t, err)
	assert.True(t, IsVaultUnavailable(err))

	err = client.DeleteSecret(ctx, "some-ref")
	require.Error(t, err)
	assert.True(t, IsVaultUnavailable(err))
}

func TestVaultClientUnreachable(t *testing.T) {
	// nothing listens here
	client := NewVaultClient("http://127.0.0.1:1", "")

	_, err := client.CreateSecret(context.Background(), "value", "name", "desc")
	require.Error(t, err)
	assert.True(t, IsVaultUnavailable(err))
}

func TestVaultClientEmptySecretID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(createSecretResponse{})
	}))
	t.Cleanup(server.Close)

	client := NewVaultClient(server.URL, "")
	_, err := client.CreateSecret(context.Background(), "value", "name", "desc")
	require.Error(t, err)
	assert.True(t, IsVaultUnavailable(err))
}
