package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
)

func TestDoDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments", r.URL.Path)
		assert.Equal(t, "scheduled", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": 3}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0, nil)
	var out struct {
		Value int `json:"value"`
	}
	err := c.Get(context.Background(), "fetch appointments", "/api/appointments", url.Values{"status": {"scheduled"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Value)
}

func TestDoSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "leak", body["custom_context"])
		w.Write([]byte(`{"campaign_id": 12}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil)
	var out struct {
		CampaignID int `json:"campaign_id"`
	}
	err := c.Do(context.Background(), "start fill workflow", http.MethodPost, "/x", nil, map[string]string{"custom_context": "leak"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 12, out.CampaignID)
}

func TestDoReturnsRequestErrorWithDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Appointment is already cancelled, cannot cancel"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, 0, nil).Get(context.Background(), "start fill workflow", "/x", nil, nil)

	var re *appErrors.RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Equal(t, "Bad Request", re.Status)
	assert.Equal(t, "Appointment is already cancelled, cannot cancel", re.Detail)
}

func TestDoReturnsRequestErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL, 0, nil).Get(context.Background(), "fetch campaigns", "/x", nil, nil)

	var re *appErrors.RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Internal Server Error", re.Status)
	assert.Empty(t, re.Detail)
	assert.Equal(t, "failed to fetch campaigns: Internal Server Error", err.Error())
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	err := New(base, 0, nil).Get(context.Background(), "fetch appointments", "/x", nil, nil)
	var re *appErrors.RequestError
	require.True(t, errors.As(err, &re))
	assert.Zero(t, re.StatusCode)
}

func TestReadDetailNonString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body"], "msg": "field required"}]}`))
	}))
	defer srv.Close()

	err := New(srv.URL, 0, nil).Get(context.Background(), "start fill workflow", "/x", nil, nil)
	var re *appErrors.RequestError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, re.Detail, "field required")
}
