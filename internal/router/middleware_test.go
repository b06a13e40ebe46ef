package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SessionMiddleware())
	engine.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": sessionID(c)})
	})
	return engine
}

func TestSessionMiddleware_MintsIDForFirstVisit(t *testing.T) {
	engine := newTestEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(rec, req)

	minted := rec.Header().Get(sessionHeader)
	require.NotEmpty(t, minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
}

func TestSessionMiddleware_EchoesExistingID(t *testing.T) {
	engine := newTestEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(sessionHeader, "sess-keep-me")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "sess-keep-me", rec.Header().Get(sessionHeader))
	assert.Contains(t, rec.Body.String(), "sess-keep-me")
}

func TestSessionMiddleware_BlankHeaderIsTreatedAsMissing(t *testing.T) {
	engine := newTestEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(sessionHeader, "   ")
	engine.ServeHTTP(rec, req)

	minted := rec.Header().Get(sessionHeader)
	require.NotEmpty(t, minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
}
