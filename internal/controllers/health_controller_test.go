package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studentnest/studentnest-backend/internal/dtos"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func TestCheckHealthPingsDB(t *testing.T) {
	c := NewHealthCheckController(&fakePinger{})

	rec := httptest.NewRecorder()
	c.CheckHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.HealthCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
}

func TestCheckHealthReportsUnreachableDB(t *testing.T) {
	c := NewHealthCheckController(&fakePinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	c.CheckHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, utils.ErrCodeInternal, resp.Code)
}
