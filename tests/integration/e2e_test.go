//go:build integration

package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL string

// TestMain verifies the server under test is reachable before running
// the suite. Start the server separately, e.g. with STORAGE=memory.
func TestMain(m *testing.M) {
	baseURL = getBaseURL()

	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		panic(fmt.Sprintf("server not reachable at %s: %v", baseURL, err))
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("health check failed with status %d", resp.StatusCode))
	}

	os.Exit(m.Run())
}

func getBaseURL() string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func postForm(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := http.PostForm(baseURL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func del(t *testing.T, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

// uniqueName keeps reruns against a persistent store from colliding on
// the duplicate-name check.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestE2E_FullTradingLifecycle(t *testing.T) {
	ownerName := uniqueName("owner")
	locationName := uniqueName("location")

	// Owner with funded balance.
	code, body := postForm(t, "/api/owners", url.Values{"name": {ownerName}})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "Owner has been created. Hello "+ownerName, body)

	code, body = postForm(t, "/api/owners/topup", url.Values{"name": {ownerName}, "amount": {"1000"}})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Topup successful, your cash is $1000.", body)

	// Listed location.
	code, body = postForm(t, "/api/locations", url.Values{"name": {locationName}, "price": {"1000"}})
	require.Equal(t, http.StatusCreated, code, body)

	// Buy 400 of 1000: cash 600, availability 60%, holding 40%.
	code, body = postForm(t, "/api/trades/buy", url.Values{
		"owner": {ownerName}, "location": {locationName}, "amount": {"400"},
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, "as much as 40% or $400")

	code, body = get(t, "/api/owners")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, ownerName+" - $600")

	code, body = get(t, "/api/locations/"+url.PathEscape(locationName))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Available Percentage: 60%")

	code, body = get(t, "/api/holdings/search?owner="+url.QueryEscape(ownerName)+"&location="+url.QueryEscape(locationName))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Owner Percentage: 40%")

	// Sell 200 back: cash 800, availability 80%, holding 20%.
	code, body = postForm(t, "/api/trades/sell", url.Values{
		"owner": {ownerName}, "location": {locationName}, "amount": {"200"},
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, "as much as 20% or $200")

	code, body = get(t, "/api/owners")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, ownerName+" - $800")

	// Reverse the 200 sell record; it is unwound as a buy.
	code, body = del(t, "/api/transactions?owner="+url.QueryEscape(ownerName)+
		"&location="+url.QueryEscape(locationName)+"&amount=200")
	require.Equal(t, http.StatusOK, code, body)

	code, body = get(t, "/api/owners")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, ownerName+" - $1000")

	// Cleanup; cascades clear this owner's transactions and holdings.
	code, body = del(t, "/api/owners/"+url.PathEscape(ownerName))
	require.Equal(t, http.StatusOK, code, body)
	code, body = del(t, "/api/locations/"+url.PathEscape(locationName))
	require.Equal(t, http.StatusOK, code, body)
}

func TestE2E_ErrorContract(t *testing.T) {
	missing := uniqueName("missing")

	code, body := postForm(t, "/api/owners/topup", url.Values{"name": {missing}, "amount": {"100"}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Error. Owner is not exist...", body)

	code, body = postForm(t, "/api/trades/buy", url.Values{
		"owner": {missing}, "location": {missing}, "amount": {"oops"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Error. Amount is NaN or below 0...", body)

	ownerName := uniqueName("owner")
	code, body = postForm(t, "/api/owners", url.Values{"name": {ownerName}})
	require.Equal(t, http.StatusCreated, code, body)

	code, body = postForm(t, "/api/owners", url.Values{"name": {ownerName}})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Error. Owner already exist...", body)

	code, body = del(t, "/api/owners/"+url.PathEscape(ownerName))
	require.Equal(t, http.StatusOK, code, body)
}
