package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
}

func TestHealthDatabaseDown(t *testing.T) {
	h := &Handlers{
		DB:  pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		Log: zerolog.Nop(),
	}
	api := newTestAPI(t)
	api.router.GET("/down", h.Health)

	w := api.do(t, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"unreachable"}`, w.Body.String())
}
