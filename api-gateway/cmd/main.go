package main

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ify-osakwe/hygea/shared/middleware"
)

var (
	authServiceURL    = getEnv("AUTH_SERVICE_URL", "http://localhost:8081")
	patientServiceURL = getEnv("PATIENT_SERVICE_URL", "http://localhost:8082")
)

func main() {
	middleware.MustInitJWTSecret()

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "api-gateway"})
	})

	// Auth routes (no authentication required)
	router.POST("/v1/auth/login", proxyTo(authServiceURL))
	router.GET("/v1/auth/validate", proxyTo(authServiceURL))
	router.POST("/v1/auth/refresh", proxyTo(authServiceURL))

	// Patient routes - every request passes the identity gate before it
	// reaches the patient orchestrator.
	router.GET("/v1/patients", middleware.AuthMiddleware(), proxyTo(patientServiceURL))
	router.POST("/v1/patients", middleware.AuthMiddleware(), proxyTo(patientServiceURL))
	router.GET("/v1/patients/:patientId", middleware.AuthMiddleware(), proxyTo(patientServiceURL))
	router.PUT("/v1/patients/:patientId", middleware.AuthMiddleware(), proxyTo(patientServiceURL))
	router.DELETE("/v1/patients/:patientId", middleware.AuthMiddleware(), proxyTo(patientServiceURL))

	port := getEnv("PORT", "8080")
	log.Printf("API Gateway starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func proxyTo(serviceURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetURL := serviceURL + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			targetURL += "?" + c.Request.URL.RawQuery
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		req, err := http.NewRequest(c.Request.Method, targetURL, bytes.NewBuffer(bodyBytes))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create request"})
			return
		}

		for key, values := range c.Request.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		// Forward user context from JWT middleware if authenticated
		if userID, exists := c.Get("userId"); exists {
			req.Header.Set("X-User-ID", userID.(string))
		}
		if email, exists := c.Get("email"); exists {
			req.Header.Set("X-User-Email", email.(string))
		}

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Error proxying request: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Service unavailable"})
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read response"})
			return
		}

		for key, values := range resp.Header {
			for _, value := range values {
				c.Header(key, value)
			}
		}

		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSuffix(value, "/")
	}
	return fallback
}
