package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	db     *memDB
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	require.NoError(t, RegisterValidators())

	db := newMemDB()
	clock := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	h := &Handlers{
		Vegetables: memVegetables{db: db},
		Orders:     memOrders{db: db},
		DB:         pingFunc(func(context.Context) error { return nil }),
		Log:        zerolog.New(io.Discard),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/vegetables", h.ListVegetables)
	api.POST("/vegetables", h.CreateVegetable)
	api.PUT("/vegetables/:id", h.UpdateVegetable)
	api.DELETE("/vegetables/:id", h.DeleteVegetable)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders", h.PlaceOrder)
	api.PUT("/orders/:id", h.UpdateOrder)

	return &testAPI{db: db, router: r}
}

// do sends body (a string is sent verbatim, anything else is marshalled).
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
