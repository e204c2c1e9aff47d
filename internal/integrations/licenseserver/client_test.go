package licenseserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

func TestClient_Validate_Success(t *testing.T) {
	var got ValidateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"license_key":"KEY-1","customer":"ACME","source":"envato","valid_until":"2026-01-01"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	resp, err := client.Validate(context.Background(), &ValidateRequest{
		Plugin:       "smc-simple-booking",
		Action:       ActionActivate,
		Source:       "envato",
		PurchaseCode: "abcd-1234",
		LicenseCode:  "abcd-1234",
		Domain:       "booking.example.com",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "KEY-1", resp.Data.LicenseKey)
	assert.Equal(t, "2026-01-01", resp.Data.ValidUntil)
	assert.Equal(t, ActionActivate, got.Action)
	assert.Equal(t, "abcd-1234", got.PurchaseCode)
}

func TestClient_Validate_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":true,"message":"code revoked"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, time.Second, logger.NewNop()).
		Validate(context.Background(), &ValidateRequest{Action: ActionCheck})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "code revoked", resp.Message)
}

func TestClient_Validate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).
		Validate(context.Background(), &ValidateRequest{Action: ActionCheck})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Validate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).
		Validate(context.Background(), &ValidateRequest{Action: ActionCheck})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Validate_NotConfigured(t *testing.T) {
	_, err := NewClient("", time.Second, logger.NewNop()).
		Validate(context.Background(), &ValidateRequest{Action: ActionCheck})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Validate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, logger.NewNop()).
		Validate(context.Background(), &ValidateRequest{Action: ActionCheck})
	assert.ErrorIs(t, err, ErrInternal)
}
