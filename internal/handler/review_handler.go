package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"gamereviews/backend/internal/auth"
	"gamereviews/backend/internal/config"
	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/hub"
	"gamereviews/backend/internal/logger"
	"gamereviews/backend/internal/models"
	"gamereviews/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// ReviewForm is the review submission, posted from the /new form or as JSON.
type ReviewForm struct {
	GameName    string `form:"name" json:"game" binding:"required" example:"Celeste"`
	Reviewer    string `form:"reviewer" json:"reviewer" binding:"required" example:"Jane"`
	Score       int    `form:"score" json:"score" binding:"required,min=1,max=10" example:"9"`
	Description string `form:"desc" json:"description" example:"Tough but fair."`
	Tags        string `form:"tags" json:"tags" example:"hard, pixel art"`
}

func (f ReviewForm) input() service.ReviewInput {
	return service.ReviewInput{
		Reviewer:    f.Reviewer,
		GameName:    f.GameName,
		Score:       f.Score,
		Description: f.Description,
		Tags:        f.Tags,
	}
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	GameID      uint      `json:"game_id"`
	Game        string    `json:"game"`
	UserID      uint      `json:"user_id"`
	Reviewer    string    `json:"reviewer"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func newReviewResponse(review models.Review) ReviewResponse {
	tags := make([]string, 0, len(review.Tags))
	for _, tag := range review.Tags {
		tags = append(tags, tag.Text)
	}
	return ReviewResponse{
		ID:          review.ID,
		GameID:      review.GameID,
		Game:        review.Game.Name,
		UserID:      review.UserID,
		Reviewer:    review.User.Name,
		Score:       review.Score,
		Description: review.Description,
		Tags:        tags,
		CreatedAt:   review.CreatedAt,
	}
}

// PaginatedReviewResponse defines the structure for a paginated list of reviews.
type PaginatedReviewResponse struct {
	Data []ReviewResponse `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// afterReviewSaved remembers the reviewer and announces the review to stream subscribers.
func afterReviewSaved(c *gin.Context, review *models.Review) ReviewResponse {
	log := logger.FromGin(c)
	response := newReviewResponse(*review)

	if err := auth.RememberReviewer(c, review.User.Name, []byte(config.AppConfig.SessionSecret), config.AppConfig.IsProduction()); err != nil {
		log.Warn("Failed to set reviewer cookie", zap.Error(err))
	}
	if err := hub.GlobalHub.Publish(review.GameID, hub.Event{Type: hub.EventReviewCreated, Payload: response}); err != nil {
		log.Warn("Failed to publish review event", zap.Error(err))
	}

	log.Info("Review stored",
		zap.Uint("review_id", review.ID),
		zap.Uint("game_id", review.GameID),
		zap.Uint("user_id", review.UserID))
	return response
}

// region --- Pages ---

func renderReviewForm(c *gin.Context, status int, form ReviewForm, errs []string) {
	c.HTML(status, "review_form.html", gin.H{
		"Title":  "Write a review",
		"Form":   form,
		"Errors": errs,
	})
}

// NewReviewForm renders the review form, pre-filling the remembered reviewer.
func NewReviewForm(c *gin.Context) {
	form := ReviewForm{
		Reviewer: auth.Reviewer(c),
		GameName: c.Query("game"),
	}
	renderReviewForm(c, http.StatusOK, form, nil)
}

// SubmitReview stores a review posted from the /new form and redirects to the review list.
func SubmitReview(c *gin.Context) {
	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		renderReviewForm(c, http.StatusUnprocessableEntity, form, bindingMessages(err, scoreMessage))
		return
	}

	review, err := service.SubmitReview(c.Request.Context(), database.DB, form.input())
	if err != nil {
		status, msg := reviewErrorStatus(err)
		if status == http.StatusInternalServerError {
			renderError(c, status, msg, err)
			return
		}
		renderReviewForm(c, status, form, []string{msg})
		return
	}

	afterReviewSaved(c, review)
	c.Redirect(http.StatusSeeOther, "/reviews")
}

// ListReviews renders one page of reviews with game and reviewer names.
func ListReviews(c *gin.Context) {
	page, limit := parsePagination(c)

	reviews, total, err := service.ListReviews(c.Request.Context(), database.DB, page, limit)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Failed to retrieve reviews", err)
		return
	}

	rows := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		rows = append(rows, newReviewResponse(review))
	}
	paged := NewPaginatedResponse(rows, total, page, limit)

	c.HTML(http.StatusOK, "reviews.html", gin.H{
		"Title":   "Reviews",
		"Reviews": paged.Data,
		"Meta":    paged.Meta,
	})
}

// StreamReviews sends each new review as a Server-Sent Event. With game_id set,
// only reviews for that game are sent.
func StreamReviews(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.DefaultQuery("game_id", "0"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID"})
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(uint(gameID), client)
	defer hub.GlobalHub.Unsubscribe(uint(gameID), client)

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("review", string(msg))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// endregion

// region --- API ---

// CreateReview godoc
// @Summary      Submit a review
// @Description  Stores a review for a game that was already found by a search. Tags are comma-separated.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        input body ReviewForm true "Review"
// @Success      201  {object}  ReviewResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Review already exists"
// @Failure      422  {object}  ErrorResponse "Invalid score or missing field"
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	var form ReviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: bindingMessages(err, "Malformed review")[0]})
		return
	}

	review, err := service.SubmitReview(c.Request.Context(), database.DB, form.input())
	if err != nil {
		status, msg := reviewErrorStatus(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusCreated, afterReviewSaved(c, review))
}

// GetReviews godoc
// @Summary      List reviews
// @Description  Retrieves a paginated list of reviews, newest first, with game and reviewer names.
// @Tags         reviews
// @Produce      json
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Items per page" default(20)
// @Success      200  {object}  PaginatedReviewResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /reviews [get]
func GetReviews(c *gin.Context) {
	page, limit := parsePagination(c)

	reviews, total, err := service.ListReviews(c.Request.Context(), database.DB, page, limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, newReviewResponse(review))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, total, page, limit))
}

// endregion
