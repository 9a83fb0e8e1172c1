package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rizfc/restaurant-site/content"
	"github.com/rizfc/restaurant-site/controllers"
	"github.com/rizfc/restaurant-site/metrics"
	"github.com/rizfc/restaurant-site/middlewares"
	"github.com/rizfc/restaurant-site/services"
	"github.com/rizfc/restaurant-site/utils"
	"gorm.io/gorm"
)

type Options struct {
	CORSOrigins []string
	// StaticDir holds the built single page app. Empty disables it.
	StaticDir string
	Content   *content.Content
	Metrics   *metrics.Metrics
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(opts.Metrics.Middleware())

	systemCtrl := controllers.NewSystemController(db)
	bookingCtrl := controllers.NewBookingController(services.NewBookingService(db), opts.Metrics)

	r.GET("/ping", systemCtrl.Ping)
	r.GET("/health", systemCtrl.Health)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/bookings", bookingCtrl.CreateBooking)

		if opts.Content != nil {
			contentCtrl := controllers.NewContentController(opts.Content)
			api.GET("/content", contentCtrl.GetContent)
		}
	}

	r.NoRoute(spaHandler(opts.StaticDir))

	return r
}

// spaHandler serves files from dir and falls back to index.html so client
// side anchors and routes keep working. Unknown /api paths get a JSON 404.
func spaHandler(dir string) gin.HandlerFunc {
	if dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			utils.ErrorLogger.Printf("WARNING: static dir not found: %s", dir)
			dir = ""
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			utils.RespondMessage(c, http.StatusNotFound, "not found")
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
