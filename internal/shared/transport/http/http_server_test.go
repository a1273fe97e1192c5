package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthzRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, nethttp.StatusOK)
	}
}

func TestGroupRoutesServed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New())
	s.Group().GET("/ping", func(c *gin.Context) {
		c.String(nethttp.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping = %d %q", w.Code, w.Body.String())
	}
}
