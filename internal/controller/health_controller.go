package controller

import (
	"lingua_edu_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// HealthController reports service liveness and dependency health.
type HealthController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	started time.Time
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb, started: time.Now()}
}

// Health godoc
// @Summary Liveness and dependency health
// @Tags Health
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (hc *HealthController) Health(ctx *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := hc.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if hc.Redis == nil || hc.Redis.Ping(ctx.Request.Context()).Err() != nil {
		redisStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
		"uptime":   time.Since(hc.started).String(),
	})
}
