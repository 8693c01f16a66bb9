package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
)

func TestRecovery(t *testing.T) {
	t.Run("normal request passes through", func(t *testing.T) {
		rec := &logRecorder{}
		router := gin.New()
		router.Use(Recovery(rec.logger()))
		router.GET("/api/v1/items", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, rec.lines(t))
	})

	t.Run("panic becomes an internal error envelope", func(t *testing.T) {
		rec := &logRecorder{}

		var hooked []any
		var route string

		router := gin.New()
		router.Use(Recovery(rec.logger(), func(c *gin.Context, r any, stack []byte) {
			hooked = append(hooked, r)
			route = c.FullPath()
			assert.NotEmpty(t, stack)
		}), RequestID())
		router.GET("/api/v1/designer/preview/:quotationId", func(*gin.Context) {
			panic("nil layout")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/designer/preview/4", nil)
		req.Header.Set(HeaderRequestID, "req-panic")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, dto.ErrorCodeInternal, body.Error.Code)

		assert.Equal(t, []any{"nil layout"}, hooked)
		assert.Equal(t, "/api/v1/designer/preview/:quotationId", route)

		lines := rec.lines(t)
		require.Len(t, lines, 1)
		assert.Equal(t, "panic recovered", lines[0]["msg"])
		assert.Equal(t, "req-panic", lines[0]["request_id"])
	})

	t.Run("response already written is kept", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery((&logRecorder{}).logger()))
		router.GET("/api/v1/quotation", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late failure")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotation", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}
