package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *fixture) {
	t.Helper()
	f := newFixture(t)
	router := mux.NewRouter()
	NewHTTPHandler(f.manager).RegisterRoutes(router)
	return router, f
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHTTPHandler_ListStats(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []exstats.StatInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Len(t, stats, 8)
	assert.Equal(t, exstats.StatTime, stats[0].ID)
}

func TestHTTPHandler_SessionFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/sessions", CreateSessionRequest{
		Stats: []exstats.StatID{exstats.StatStep, exstats.StatCadence},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doRequest(t, router, http.MethodPost, "/api/sessions/"+created.ID+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/device/steps", StepsRequest{Count: 25})
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Stats, 2)
	assert.Equal(t, exstats.StatStep, snap.Stats[0].ID)
	assert.Equal(t, float64(25), snap.Stats[0].Value)
	assert.Equal(t, "25", snap.Stats[0].Text)

	rec = doRequest(t, router, http.MethodPost, "/api/sessions/"+created.ID+"/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPHandler_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/sessions", CreateSessionRequest{Stats: []exstats.StatID{"bogus"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/sessions/nope/start", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPHandler_PowerAndSettings(t *testing.T) {
	router, f := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/sessions", CreateSessionRequest{
		Stats: []exstats.StatID{exstats.StatBPM},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/device/power", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var power PowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &power))
	require.Len(t, power.Sensors, 2)
	assert.False(t, power.Sensors[0].On)
	assert.True(t, power.Sensors[1].On)

	rec = doRequest(t, router, http.MethodPut, "/api/menu/Ntfy%20Dist", MenuUpdateRequest{Value: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var opts exstats.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, int64(1609), opts.Notify.Dist.Increment)

	opts.PaceLength = 21098
	rec = doRequest(t, router, http.MethodPut, "/api/settings", opts)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.store.Load(t.Context(), "test")
	require.NoError(t, err)
	assert.Equal(t, 21098, stored.PaceLength)

	rec = doRequest(t, router, http.MethodPut, "/api/menu/Pace", MenuUpdateRequest{Value: 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
