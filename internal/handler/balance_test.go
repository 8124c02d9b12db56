package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/wealth-balance-service/internal/handler"
	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
	"github.com/maxviazov/wealth-balance-service/internal/service"
	"github.com/maxviazov/wealth-balance-service/pkg/response"
)

// stubBalanceService records the last request and returns canned results.
type stubBalanceService struct {
	lastReq     pagination.Request
	listCalls   int
	conn        pagination.Connection[model.BalanceNode]
	listErr     error
	lastRecords []importer.Record
	importRes   service.ImportResult
	importErr   error
}

func (s *stubBalanceService) ListBalances(_ context.Context, req pagination.Request) (pagination.Connection[model.BalanceNode], error) {
	s.listCalls++
	s.lastReq = req
	return s.conn, s.listErr
}

func (s *stubBalanceService) ImportAssets(_ context.Context, records []importer.Record) (service.ImportResult, error) {
	s.lastRecords = records
	return s.importRes, s.importErr
}

func newEngine(svc service.BalanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return handler.NewEngine(zerolog.New(io.Discard), time.Second, stubPinger{}, svc)
}

func do(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBalances_OK(t *testing.T) {
	asOf := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c0, c1 := "0", "1"
	svc := &stubBalanceService{conn: pagination.Connection[model.BalanceNode]{
		Edges: []pagination.Edge[model.BalanceNode]{
			{Cursor: c0, Node: model.BalanceNode{AssetID: "a", Nickname: "Checking", Balance: decimal.RequireFromString("10.5"), BalanceAsOf: asOf}},
			{Cursor: c1, Node: model.BalanceNode{AssetID: "b", Nickname: "Savings", Balance: decimal.RequireFromString("2"), BalanceAsOf: asOf}},
		},
		PageInfo:   pagination.PageInfo{HasNextPage: true, StartCursor: &c0, EndCursor: &c1},
		TotalCount: 5,
	}}

	w := do(newEngine(svc), http.MethodGet, "/api/v1/balances?as_of=2024-03-01T00:00:00Z&first=2&after=4", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Edges []struct {
			Cursor string `json:"cursor"`
			Node   struct {
				AssetID string `json:"assetId"`
				Balance string `json:"balance"`
			} `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasPreviousPage bool    `json:"hasPreviousPage"`
			HasNextPage     bool    `json:"hasNextPage"`
			EndCursor       *string `json:"endCursor"`
		} `json:"pageInfo"`
		TotalCount int `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Edges, 2)
	assert.Equal(t, "a", got.Edges[0].Node.AssetID)
	assert.Equal(t, "10.5", got.Edges[0].Node.Balance)
	assert.True(t, got.PageInfo.HasNextPage)
	require.NotNil(t, got.PageInfo.EndCursor)
	assert.Equal(t, "1", *got.PageInfo.EndCursor)
	assert.Equal(t, 5, got.TotalCount)

	assert.True(t, svc.lastReq.AsOf.Equal(asOf))
	require.NotNil(t, svc.lastReq.First)
	assert.Equal(t, 2, *svc.lastReq.First)
	require.NotNil(t, svc.lastReq.After)
	assert.Equal(t, "4", *svc.lastReq.After)
	assert.Nil(t, svc.lastReq.Before)
	assert.Nil(t, svc.lastReq.Last)
}

func TestBalances_DefaultsLeaveRequestEmpty(t *testing.T) {
	svc := &stubBalanceService{}
	w := do(newEngine(svc), http.MethodGet, "/api/v1/balances", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastReq.AsOf.IsZero())
}

func TestBalances_BadQueryParams(t *testing.T) {
	svc := &stubBalanceService{}
	w := do(newEngine(svc), http.MethodGet, "/api/v1/balances?as_of=yesterday&first=ten&last=x", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.listCalls)

	var payload response.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "invalid_input", payload.Error)
	var fields []string
	for _, fe := range payload.FieldErrors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"as_of", "first", "last"}, fields)
}

func TestBalances_ServiceErrorsMapped(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid cursor", service.NewInvalidInputError(service.FieldError{Field: "after", Message: "is not a valid cursor"}), http.StatusBadRequest},
		{"store down", repository.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newEngine(&stubBalanceService{listErr: tc.err}), http.MethodGet, "/api/v1/balances?after=zz", nil)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestImport_Created(t *testing.T) {
	batch := uuid.New()
	svc := &stubBalanceService{importRes: service.ImportResult{BatchID: batch, Count: 2}}
	body := `[{"assetId":"a","nickname":"A"},{"assetId":"b","nickname":"B"}]`

	w := do(newEngine(svc), http.MethodPost, "/api/v1/import", []byte(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got service.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, batch, got.BatchID)
	assert.Equal(t, 2, got.Count)
	require.Len(t, svc.lastRecords, 2)
	assert.Equal(t, "b", svc.lastRecords[1].AssetID)
}

func TestImport_MalformedBody(t *testing.T) {
	svc := &stubBalanceService{}
	w := do(newEngine(svc), http.MethodPost, "/api/v1/import", []byte(`{"assetId":"a"}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastRecords)
	assert.Contains(t, w.Body.String(), `"field":"body"`)
}

func TestImport_Rejected(t *testing.T) {
	svc := &stubBalanceService{importErr: &service.ImportRejectedError{Errors: []importer.IndexedError{
		{Index: 1, Err: assert.AnError},
	}}}
	w := do(newEngine(svc), http.MethodPost, "/api/v1/import", []byte(`[{},{}]`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var payload response.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "import_rejected", payload.Error)
	require.Len(t, payload.Errors, 1)
	assert.True(t, strings.HasPrefix(payload.Errors[0], "failed to convert asset at index 1: "))
}

func TestImport_Duplicate(t *testing.T) {
	svc := &stubBalanceService{importErr: repository.ErrAlreadyExists}
	w := do(newEngine(svc), http.MethodPost, "/api/v1/import", []byte(`[{}]`))
	assert.Equal(t, http.StatusConflict, w.Code)
}
