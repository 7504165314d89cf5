package mercadopago_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"muebleria/pkg/mercadopago"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreference(t *testing.T) {
	var gotAuth string
	var gotReq mercadopago.PreferenceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "pref-123",
			"init_point": "https://gateway.example/pay/pref-123",
		})
	}))
	defer server.Close()

	client := mercadopago.NewClient(mercadopago.Config{
		AccessToken: "secret-token",
		BaseURL:     server.URL,
	})

	initPoint, err := client.CreatePreference(mercadopago.PreferenceRequest{
		Items: []mercadopago.PreferenceItem{
			{Title: "Sofá de tres plazas", Quantity: 1, UnitPrice: 100.0, CurrencyID: "MXN"},
		},
		ExternalReference: "cart-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example/pay/pref-123", initPoint)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "cart-42", gotReq.ExternalReference)
	require.Len(t, gotReq.Items, 1)
	assert.Equal(t, "Sofá de tres plazas", gotReq.Items[0].Title)
}

func TestCreatePreference_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "bad_request",
			"message": "invalid access token",
		})
	}))
	defer server.Close()

	client := mercadopago.NewClient(mercadopago.Config{AccessToken: "bad", BaseURL: server.URL})
	_, err := client.CreatePreference(mercadopago.PreferenceRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_request")
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/987654", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":                 987654,
			"status":             "approved",
			"external_reference": "cart-42",
		})
	}))
	defer server.Close()

	client := mercadopago.NewClient(mercadopago.Config{
		AccessToken: "secret-token",
		BaseURL:     server.URL,
	})

	payment, err := client.GetPayment("987654")
	require.NoError(t, err)
	assert.Equal(t, "987654", payment.ID.String())
	assert.Equal(t, mercadopago.PaymentStatusApproved, payment.Status)
	assert.Equal(t, "cart-42", payment.ExternalReference)
}

func TestGetPayment_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := mercadopago.NewClient(mercadopago.Config{AccessToken: "t", BaseURL: server.URL})
	_, err := client.GetPayment("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
