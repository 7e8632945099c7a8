package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gamereviews/backend/internal/catalog"
	"gamereviews/backend/internal/logger"
	"gamereviews/backend/internal/models"
	"gamereviews/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Catalog is the game catalog the search pages query. It is set during startup.
var Catalog catalog.Searcher

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

const (
	scoreMessage    = "ERROR -- Your score must be between 1 and 10."
	gameMessage     = "Please enter the full name of the game."
	reviewerMessage = "Please enter who you are reviewing this game as."
)

// fieldMessages maps form struct fields to the message shown when they fail validation.
var fieldMessages = map[string]string{
	"Score":    scoreMessage,
	"GameName": gameMessage,
	"Reviewer": reviewerMessage,
}

// bindingMessages turns a ShouldBind error into user-facing messages.
// Anything other than a validator error is a malformed value; fallback describes it.
func bindingMessages(err error, fallback string) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fallback}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fe.Field()+" is invalid")
	}
	return msgs
}

// reviewErrorStatus maps a review submission failure to its HTTP status and message.
func reviewErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrScoreOutOfRange):
		return http.StatusUnprocessableEntity, scoreMessage
	case errors.Is(err, service.ErrReviewerRequired):
		return http.StatusUnprocessableEntity, reviewerMessage
	case errors.Is(err, service.ErrReviewerTooLong):
		return http.StatusUnprocessableEntity, fmt.Sprintf("ERROR -- Your name can be at most %d characters long.", models.MaxNameLength)
	case errors.Is(err, service.ErrTagTooLong):
		return http.StatusUnprocessableEntity, fmt.Sprintf("ERROR -- Each tag can be at most %d characters long.", models.MaxTagLength)
	case errors.Is(err, service.ErrGameNameRequired):
		return http.StatusUnprocessableEntity, gameMessage
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound, "ERROR -- That game was not found. Search for it first so it can be reviewed."
	case errors.Is(err, service.ErrDuplicateReview):
		return http.StatusConflict, "ERROR -- You have already reviewed this game."
	default:
		return http.StatusInternalServerError, "Failed to save review"
	}
}

// renderError logs err and renders the generic error page.
func renderError(c *gin.Context, status int, msg string, err error) {
	_ = c.Error(err)
	logger.FromGin(c).Error(msg, zap.Error(err))
	c.HTML(status, "error.html", gin.H{"Title": "Something went wrong"})
}

// NotFound renders the 404 page, or a JSON error for API paths.
func NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"Title": "Page not found",
		"Path":  c.Request.URL.Path,
	})
}
