package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rizfc/restaurant-site/utils"
	"gorm.io/gorm"
)

type SystemController struct {
	DB *gorm.DB
}

func NewSystemController(db *gorm.DB) *SystemController {
	return &SystemController{DB: db}
}

func (sc *SystemController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports whether the database answers within two seconds.
func (sc *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := sc.ping(ctx); err != nil {
		utils.ErrorLogger.Printf("Health check failed: %v", err)
		utils.RespondMessage(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (sc *SystemController) ping(ctx context.Context) error {
	if sc.DB == nil {
		return errors.New("no database configured")
	}
	sqlDB, err := sc.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
