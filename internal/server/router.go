package server

import (
	"html/template"
	"net/http"

	"gamereviews/backend/internal/auth"
	"gamereviews/backend/internal/handler"
	"gamereviews/backend/internal/logger"

	// Registers the generated swagger spec.
	_ "gamereviews/backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter wires the HTML pages, the JSON API and the middleware stack.
func NewRouter(log *zap.Logger, tmpl *template.Template, cookieSecret []byte) *gin.Engine {
	router := gin.New()
	router.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		auth.ReviewerMiddleware(cookieSecret),
	)
	router.SetHTMLTemplate(tmpl)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Game search
	router.GET("/", handler.Home)
	router.POST("/", handler.SearchGames)
	router.GET("/search", handler.SearchGames)
	router.POST("/search", handler.SearchGames)

	// Reviews
	router.GET("/new", handler.NewReviewForm)
	router.POST("/new", handler.SubmitReview)
	router.GET("/reviews", handler.ListReviews)
	router.GET("/reviews/stream", handler.StreamReviews)

	// Tags
	router.GET("/tags", handler.TagSearchForm)
	router.GET("/tag_results", handler.TagResults)

	// Listings
	router.GET("/results", handler.RecentGames)
	router.GET("/names", handler.ListUsers)
	router.GET("/games", handler.ListGames)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/games", handler.GetGames)
		apiV1.GET("/users", handler.GetUsers)
		apiV1.GET("/reviews", handler.GetReviews)
		apiV1.POST("/reviews", handler.CreateReview)
		apiV1.GET("/tags/reviews", handler.GetReviewsByTags)
	}

	router.NoRoute(handler.NotFound)
	return router
}
