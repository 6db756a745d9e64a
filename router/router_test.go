package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/config"
	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/router"
	"github.com/bugemco/multimedia-request-hub/services"
	"github.com/bugemco/multimedia-request-hub/utils"
)

// The global limiter has to sit in every registered route's handler
// chain; this drives the full router rather than the middleware alone.
func TestGlobalRateLimiterCapsBursts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Request{}))

	sessions, err := services.NewSessionService("multimediabugemco", "multimediabugemco@2025")
	assert.NoError(t, err)

	cfg := config.AppConfig{
		BaseURL:   "http://localhost:8080",
		UploadDir: t.TempDir(),
	}
	r := router.SetupRouter(db, cfg, sessions)

	// Fifty requests inside the one-second window pass, the fifty-first
	// from the same address is cut off.
	var last int
	for i := 0; i < 51; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "203.0.113.7:4711"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
		if i < 50 {
			assert.Equal(t, http.StatusOK, w.Code)
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
