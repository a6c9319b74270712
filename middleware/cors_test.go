package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doCORS(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSNoOriginAllowsAll(t *testing.T) {
	r := corsRouter("https://app.auroragov.gov.br")

	w := doCORS(r, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowedOriginIsEchoed(t *testing.T) {
	r := corsRouter("https://app.auroragov.gov.br", "http://localhost:3000")

	w := doCORS(r, http.MethodGet, "https://app.auroragov.gov.br")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.auroragov.gov.br", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSTrailingSlashIsNormalized(t *testing.T) {
	// lista configurada com barra final, Origin do browser sem
	r := corsRouter("https://app.auroragov.gov.br/")

	w := doCORS(r, http.MethodGet, "https://app.auroragov.gov.br")
	assert.Equal(t, "https://app.auroragov.gov.br", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOriginOmitsHeaderButProceeds(t *testing.T) {
	r := corsRouter("https://app.auroragov.gov.br")

	w := doCORS(r, http.MethodGet, "https://malicioso.example.com")
	// a request NÃO é bloqueada no servidor; o browser bloqueia a leitura
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightRespondsNoContent(t *testing.T) {
	r := corsRouter("https://app.auroragov.gov.br")

	w := doCORS(r, http.MethodOptions, "https://app.auroragov.gov.br")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
