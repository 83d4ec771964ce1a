package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
	"github.com/unclebandit/gapgrabber-web/internal/model"
)

func TestKeyRoundTrip(t *testing.T) {
	prefixes := []string{model.SlotPrefix, model.WorkflowPrefix, model.CandidatePrefix}
	ids := []int{1, 7, 42, 1000, 2147483647}

	for _, p := range prefixes {
		for _, n := range ids {
			key := model.FormatKey(p, n)
			got, err := model.ParseKey(p, key)
			require.NoError(t, err, key)
			assert.Equal(t, n, got, key)
		}
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	bad := []string{"", "slot-", "slot-abc", "slot-0", "slot--3", "slot-07", "workflow-7", "7", "slot-7x"}
	for _, key := range bad {
		_, err := model.ParseKey(model.SlotPrefix, key)
		var nf *appErrors.NotFoundError
		assert.True(t, errors.As(err, &nf), "expected NotFoundError for %q", key)
	}
}

func TestTimestampParsesBackendFormats(t *testing.T) {
	want := time.Date(2025, 11, 22, 14, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		`"2025-11-22T14:00:00Z"`,
		`"2025-11-22T14:00:00"`,
		`"2025-11-22T14:00:00.000000"`,
		`"2025-11-22T15:00:00+01:00"`,
	} {
		var ts model.Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), raw)
		assert.Equal(t, time.UTC, ts.Location(), raw)
	}

	var empty model.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	var bad model.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestWorkflowCountLabel(t *testing.T) {
	wf := model.Workflow{
		Status: model.WorkflowRunning,
		Candidates: []model.CandidateContact{
			{Status: model.CandidatePending},
			{Status: model.CandidateDeclined},
		},
	}
	assert.Equal(t, "2 contacted", wf.CountLabel())
	assert.False(t, wf.Filled())

	wf.Status = model.WorkflowSucceeded
	wf.Candidates[1].Status = model.CandidateAccepted
	assert.Equal(t, "1 accepted", wf.CountLabel())
	require.NotNil(t, wf.AcceptedCandidate())
	assert.Same(t, &wf.Candidates[1], wf.AcceptedCandidate())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Not needed", model.StatusLabel("not_needed"))
	assert.Equal(t, "Running", model.StatusLabel("running"))
	assert.Equal(t, "Accepted", model.StatusLabel("accepted"))
	assert.Equal(t, "", model.StatusLabel(""))
}
