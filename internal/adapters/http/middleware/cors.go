package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/platform/telemetry"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight response.
const DefaultCORSMaxAge = 12 * time.Hour

// CORS returns middleware that answers browser preflight requests for the
// designer UI. An empty origin list allows every origin without credentials.
func CORS(allowedOrigins []string, maxAge time.Duration) gin.HandlerFunc {
	if maxAge <= 0 {
		maxAge = DefaultCORSMaxAge
	}

	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		ExposeHeaders: []string{HeaderRequestID, HeaderCorrelationID, telemetry.HeaderTraceID},
		MaxAge:        maxAge,
	}

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
