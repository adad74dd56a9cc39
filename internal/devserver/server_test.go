package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	t     *testing.T
	base  string
	token string
}

func (a apiCall) do(method, path string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.base+path, r)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func newTestAPI(t *testing.T) apiCall {
	t.Helper()
	srv, err := New(TestConfig(), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return apiCall{t: t, base: ts.URL}
}

func (a apiCall) signin(email, password string) apiCall {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/auth/signin", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, status, string(body))
	var resp models.SignInResponse
	require.NoError(a.t, json.Unmarshal(body, &resp))
	require.NotEmpty(a.t, resp.AccessToken)
	a.token = resp.AccessToken
	return a
}

func message(t *testing.T, body []byte) string {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Message
}

var address = map[string]any{"street": "1 Main St", "city": "London", "postal_code": "N1", "country": "UK"}

func TestServer_Root(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "locator dev server", message(t, body))
}

func TestServer_SignupSignin(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/auth/signup", map[string]string{"name": "Ann", "email": "ann@x.io", "password": "pass"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var u models.User
	require.NoError(t, json.Unmarshal(body, &u))
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotContains(t, string(body), "pass")

	status, body = api.do(http.MethodPost, "/auth/signup", map[string]string{"name": "Ann", "email": "ann@x.io", "password": "pass"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already registered", message(t, body))

	status, body = api.do(http.MethodPost, "/auth/signup", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, message(t, body), "name is required")

	status, body = api.do(http.MethodPost, "/auth/signin", map[string]string{"email": "ann@x.io", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", message(t, body))

	api.signin("ann@x.io", "pass")
}

func TestServer_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/homes/", "/locations/", "/users/", "/homes/1/distances"} {
		status, _ := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	api.token = "garbage"
	status, _ := api.do(http.MethodGet, "/homes/", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_RoleGates(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodPost, "/auth/signup", map[string]string{"name": "Ann", "email": "ann@x.io", "password": "pass"})
	require.Equal(t, http.StatusCreated, status)

	user := api.signin("ann@x.io", "pass")
	status, _ = user.do(http.MethodGet, "/users/", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := user.do(http.MethodPost, "/homes/", map[string]any{"name": "Flat", "address": address})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, _ = user.do(http.MethodDelete, "/homes/1", nil)
	assert.Equal(t, http.StatusForbidden, status, "delete is admin only")

	root := api.signin("root@locator.local", "root")
	status, body = root.do(http.MethodGet, "/users/", nil)
	require.Equal(t, http.StatusOK, status)
	var users []models.User
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 2)

	status, body = root.do(http.MethodPut, "/users/1", map[string]string{"name": "r", "email": "root@locator.local", "role": "user"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Root users cannot be modified", message(t, body))

	status, _ = root.do(http.MethodPut, "/users/2", map[string]string{"name": "Ann", "email": "ann@x.io", "role": "root"})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "root cannot be granted")

	status, _ = root.do(http.MethodPut, "/users/2", map[string]string{"name": "Ann", "email": "ann@x.io", "role": "admin"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = root.do(http.MethodDelete, "/homes/3", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestServer_HomesLocationsDistances(t *testing.T) {
	api := newTestAPI(t).signin("root@locator.local", "root")

	lat, lon := 51.5, -0.12
	homeAddr := map[string]any{"street": "1 A", "city": "London", "postal_code": "N1", "country": "UK", "latitude": lat, "longitude": lon}
	status, body := api.do(http.MethodPost, "/homes/", map[string]any{"name": "Flat", "address": homeAddr})
	require.Equal(t, http.StatusCreated, status, string(body))
	var home models.Home
	require.NoError(t, json.Unmarshal(body, &home))

	near := map[string]any{"street": "2 B", "city": "London", "postal_code": "N1", "country": "UK", "latitude": lat + 0.01, "longitude": lon}
	status, _ = api.do(http.MethodPost, "/locations/", map[string]any{"name": "Cafe", "price_estimate_min": 1, "price_estimate_max": 5, "address": near})
	require.Equal(t, http.StatusCreated, status)
	status, _ = api.do(http.MethodPost, "/locations/", map[string]any{"name": "Unmapped", "address": address})
	require.Equal(t, http.StatusCreated, status)

	status, body = api.do(http.MethodPost, "/locations/", map[string]any{"name": "Bad", "address": map[string]any{"city": "x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, message(t, body), "street is required")

	status, body = api.do(http.MethodPost, "/locations/", map[string]any{"name": "Bad", "price_estimate_min": 5, "price_estimate_max": 1, "address": address})
	assert.Equal(t, http.StatusUnprocessableEntity, status, string(body))

	status, body = api.do(http.MethodGet, "/locations/?skip=0&limit=1", nil)
	require.Equal(t, http.StatusOK, status)
	var locs []models.Location
	require.NoError(t, json.Unmarshal(body, &locs))
	assert.Len(t, locs, 1)

	status, _ = api.do(http.MethodGet, "/locations/?limit=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = api.do(http.MethodGet, fmt.Sprintf("/homes/%d/distances", home.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var ds []models.Distance
	require.NoError(t, json.Unmarshal(body, &ds))
	require.Len(t, ds, 1)
	assert.Equal(t, home.ID, ds[0].OriginHomeID)

	status, _ = api.do(http.MethodGet, "/homes/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(http.MethodGet, "/homes/abc", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodPut, fmt.Sprintf("/homes/%d", home.ID), map[string]any{"name": "Renamed", "address": homeAddr})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &home))
	assert.Equal(t, "Renamed", home.Name)
}

func TestServer_Geocode(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do(http.MethodPost, "/geocode/search", address)
	require.Equal(t, http.StatusOK, status)

	var res models.GeocodeResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.NotNil(t, res.Latitude)
}
