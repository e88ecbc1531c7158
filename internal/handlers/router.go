package handlers

import (
	"net/http"

	"bakery-cart-backend/internal/middleware"
	"bakery-cart-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	Logger      *logger.Logger
	CartService CartServiceInterface
	Session     middleware.SessionOptions
	// StaticDir, when set, serves the storefront's own markup (menu pages,
	// styles) from the site root.
	StaticDir string
}

func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	router := gin.New()
	// Match on the escaped path so an item id may contain "/".
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.SetHTMLTemplate(Templates())

	router.Use(middleware.RequestIDMiddleware(opts.Logger))
	router.Use(middleware.LoggerMiddleware(opts.Logger))
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "bakery-cart",
		})
	})

	site := router.Group("/", middleware.VisitorSession(opts.Session, opts.Logger))
	NewPageHandler(opts.CartService).RegisterRoutes(site)

	api := site.Group("/api/v1")
	NewCartHandler(opts.CartService).RegisterRoutes(api)

	if opts.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(opts.StaticDir))))
	}

	return router
}
