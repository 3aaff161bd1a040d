package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for the web build of the app.
// The native mobile builds talk to the API directly and never send an
// Origin header, so this only matters for Expo web and local development.
func CORSMiddleware() gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Production domains (always allowed)
		productionOrigins := map[string]bool{
			"https://app.elitefit.app": true,
			"https://elitefit.app":     true,
		}

		// Development origins: Expo web dev server and Metro bundler
		devOrigins := map[string]bool{
			"http://localhost:8081":  true,
			"http://localhost:19006": true,
			"http://127.0.0.1:8081":  true,
		}

		var isAllowed bool
		if productionOrigins[origin] {
			isAllowed = true
		}
		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
