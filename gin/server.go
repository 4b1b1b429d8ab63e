package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohancyriac029/reviewcord/services"
)

func New(
	service *services.PaperService,
	extractor services.Extractor,
	resolver services.Resolver,
	summarizer services.Summarizer,
) (http.Handler, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PATCH, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, map[string]string{"message": "Page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	// Papers
	paperHandler := PaperHandler{Service: service}
	paperHandler.RegisterRoutes(router)

	// Standalone ingestion tools
	toolHandler := ToolHandler{
		Extractor:  extractor,
		Resolver:   resolver,
		Summarizer: summarizer,
	}
	toolHandler.RegisterRoutes(router)

	return router, nil
}
