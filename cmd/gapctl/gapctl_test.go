package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/gapgrabber-web/internal/config"
	"github.com/unclebandit/gapgrabber-web/internal/model"
)

func fakeBackend(t *testing.T, fills *[]model.CancelAndFillRequest) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/appointments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"appointments": [{"id": 7, "customer": {"id": 1, "name": "John Smith", "phone": "+447700900001"}, "scheduled_time": "2025-11-22T09:00:00Z", "service_type": "Boiler service", "status": "scheduled"}]}`))
	})
	r.Post("/api/appointments/{id}/cancel-and-fill", func(w http.ResponseWriter, r *http.Request) {
		var body model.CancelAndFillRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*fills = append(*fills, body)
		w.Write([]byte(`{"campaign_id": 3}`))
	})
	r.Get("/api/campaigns", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"campaigns": [{"id": 3, "status": "active"}]}`))
	})
	r.Get("/api/campaigns/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "3" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Campaign 9 not found"}`))
			return
		}
		w.Write([]byte(`{"id": 3, "status": "active", "cancelled_slot_time": "2025-11-22T09:00:00Z", "wait_time_minutes": 5, "outreach_attempts": [` +
			`{"customer": {"id": 10, "name": "Amy", "phone": "+10"}, "status": "sent", "sent_at": "2025-11-22T14:00:00Z"},` +
			`{"customer": {"id": 11, "name": "Ben", "phone": "+11"}, "status": "pending", "sent_at": "2025-11-22T14:00:00Z"}]}`))
	})
	r.Get("/api/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("campaign_id"))
		w.Write([]byte(`{"messages_by_customer": [{"customer": {"id": 10, "name": "Amy", "phone": "+10"}, "messages": [{"id": 1, "direction": "outbound", "content": "Slot free?", "timestamp": "2025-11-22T14:00:00"}, {"id": 2, "direction": "inbound", "content": "YES", "timestamp": "2025-11-22T14:02:00"}]}]}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	c := &cli{
		cfg:    &config.Config{APIURL: "http://unused.invalid", DisplayTimezone: "UTC"},
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2025, 11, 22, 14, 3, 0, 0, time.UTC) },
	}
	c.newAdapter = c.backendAdapter

	root := newRootCmd(c)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSlotsCommand(t *testing.T) {
	srv := fakeBackend(t, nil)
	out, err := execute(t, srv.URL, "slots")
	require.NoError(t, err)
	assert.Contains(t, out, "slot-7")
	assert.Contains(t, out, "Sat 22 Nov, 09:00 – 11:00")
	assert.Contains(t, out, "John Smith")
}

func TestWorkflowCommands(t *testing.T) {
	srv := fakeBackend(t, nil)

	out, err := execute(t, srv.URL, "workflows")
	require.NoError(t, err)
	assert.Contains(t, out, "workflow-3")
	assert.Contains(t, out, "2 contacted")

	out, err = execute(t, srv.URL, "workflow", "workflow-3")
	require.NoError(t, err)
	assert.Contains(t, out, "Contacted People (2)")
	assert.Contains(t, out, "contacted 3 minutes ago")
	assert.Contains(t, out, "will contact in 2 minutes")

	_, err = execute(t, srv.URL, "workflow", "workflow-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Campaign 9 not found")

	_, err = execute(t, srv.URL, "workflow", "9")
	assert.Error(t, err)
}

func TestMessagesCommand(t *testing.T) {
	srv := fakeBackend(t, nil)
	out, err := execute(t, srv.URL, "messages", "10", "--campaign", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Amy (+10)")
	assert.Contains(t, out, "> 22 Nov, 14:00  Slot free?")
	assert.Contains(t, out, "< 22 Nov, 14:02  YES")
}

func TestFillCommand(t *testing.T) {
	var fills []model.CancelAndFillRequest
	srv := fakeBackend(t, &fills)

	_, err := execute(t, srv.URL, "fill", "slot-7")
	require.Error(t, err)
	assert.Equal(t, "Please provide a reason for cancellation", err.Error())
	assert.Empty(t, fills)

	out, err := execute(t, srv.URL, "fill", "slot-7", "--reason", "Customer cancelled", "--discount", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Started contacting people to fill this slot")
	require.Len(t, fills, 1)
	assert.Equal(t, model.CancelAndFillRequest{DiscountPercentage: 10, WaitTimeMinutes: 5, CustomContext: "Customer cancelled"}, fills[0])
}
