package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/dayanaadylkhanova/health-exporter/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSession struct {
	fetchID  uuid.UUID
	fetchErr error
	view     entity.SessionView
	report   []byte
	reportEr error
	shareRes entity.MailResult
	shareErr error
	sharedTo string
}

func (f *fakeSession) StartFetch(context.Context) (uuid.UUID, error) { return f.fetchID, f.fetchErr }
func (f *fakeSession) View(context.Context) entity.SessionView       { return f.view }
func (f *fakeSession) Report() ([]byte, error)                       { return f.report, f.reportEr }
func (f *fakeSession) Share(_ context.Context, to string) (entity.MailResult, error) {
	f.sharedTo = to
	return f.shareRes, f.shareErr
}

type fakeTypes struct{ available bool }

func (fakeTypes) CharacteristicTypes() healthstore.Identifiers {
	return healthstore.DefaultCharacteristicTypes()
}
func (fakeTypes) QuantityTypes() healthstore.Identifiers       { return healthstore.DefaultQuantityTypes() }
func (f fakeTypes) IsHealthDataAvailable(context.Context) bool { return f.available }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_Types(t *testing.T) {
	h := NewServer(zap.NewNop(), ":0", &fakeSession{}, fakeTypes{available: true}).Routes()
	rr := do(t, h, http.MethodGet, "/v1/types", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp entity.TypesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, healthstore.QuantityStepCount, resp.Quantities["stepCount"])
	assert.Len(t, resp.Characteristics, 3)
}

func TestServer_Fetch(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"accepted", nil, http.StatusAccepted},
		{"unavailable", service.ErrHealthDataUnavailable, http.StatusServiceUnavailable},
		{"in progress", service.ErrFetchInProgress, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewServer(zap.NewNop(), ":0", &fakeSession{fetchID: id, fetchErr: tc.err}, fakeTypes{}).Routes()
			rr := do(t, h, http.MethodPost, "/v1/fetch", "")
			require.Equal(t, tc.code, rr.Code, rr.Body.String())
			if tc.err == nil {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, id.String(), resp["query_id"])
				assert.Equal(t, "QUERYING", resp["state"])
			}
		})
	}
}

func TestServer_SessionAndReport(t *testing.T) {
	sess := &fakeSession{
		view:   entity.SessionView{State: entity.QueryDone, ShareEnabled: true, Sections: []entity.DaySection{}},
		report: []byte(`[{"count":1,"startDate":"2015-07-05T01:20:32+0000","endDate":"2015-07-05T01:30:32+0000"}]`),
	}
	h := NewServer(zap.NewNop(), ":0", sess, fakeTypes{}).Routes()

	rr := do(t, h, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"state":"DONE"`)

	rr = do(t, h, http.MethodGet, "/v1/report", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, string(sess.report), rr.Body.String())

	sess.reportEr = service.ErrNothingToShare
	rr = do(t, h, http.MethodGet, "/v1/report", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestServer_Share(t *testing.T) {
	sess := &fakeSession{shareRes: entity.MailSent}
	h := NewServer(zap.NewNop(), ":0", sess, fakeTypes{}).Routes()

	rr := do(t, h, http.MethodPost, "/v1/share", `{"to":"me@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "me@example.com", sess.sharedTo)
	assert.Contains(t, rr.Body.String(), `"result":"sent"`)

	rr = do(t, h, http.MethodPost, "/v1/share", "")
	require.Equal(t, http.StatusOK, rr.Code, "empty body uses the configured recipient")
	assert.Equal(t, "", sess.sharedTo)

	rr = do(t, h, http.MethodPost, "/v1/share", `{"recipient":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	sess.shareRes, sess.shareErr = entity.MailFailed, errors.New("554 rejected")
	rr = do(t, h, http.MethodPost, "/v1/share", `{}`)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "554 rejected")

	sess.shareRes, sess.shareErr = "", service.ErrNothingToShare
	rr = do(t, h, http.MethodPost, "/v1/share", `{}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	sess.shareErr = service.ErrNoRecipient
	rr = do(t, h, http.MethodPost, "/v1/share", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_HealthzAndMetrics(t *testing.T) {
	h := NewServer(zap.NewNop(), ":0", &fakeSession{}, fakeTypes{}).Routes()
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", "").Code)
}
