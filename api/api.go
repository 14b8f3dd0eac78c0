package api

import (
	"fmt"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/app"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	PairScanHandler app.PairScanHandler
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to pairscan"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/pairScan", m.pairScan)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c).Errorw("request failed", "route", c.Request.URL.Path, "status", code, "error", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddlware tags every request with an id and a request scoped
// logger, then logs the outcome
func (m ApiHandler) logRequestMiddlware(c *gin.Context) {
	requestID := uuid.New()
	log := zap.S().With("requestID", requestID.String())
	c.Set("requestID", requestID.String())
	c.Set(logger.ContextKey, log)

	start := time.Now().UTC()
	c.Next()

	log.Infow(
		"handled request",
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
	)
}
