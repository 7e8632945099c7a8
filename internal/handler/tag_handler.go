package handler

import (
	"net/http"

	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TagSearchForm renders the tag search form.
func TagSearchForm(c *gin.Context) {
	c.HTML(http.StatusOK, "tags.html", gin.H{
		"Title": "Search reviews by tag",
		"Query": c.Query("tags"),
	})
}

// TagResults renders every review carrying one of the requested tags.
// The tags parameter may repeat and each value may hold several comma-separated tags.
func TagResults(c *gin.Context) {
	tags := service.ParseTagQuery(c.QueryArray("tags"))
	if len(tags) == 0 {
		c.HTML(http.StatusBadRequest, "tags.html", gin.H{
			"Title":  "Search reviews by tag",
			"Errors": []string{"Please enter at least one tag."},
		})
		return
	}

	matches, err := service.FindReviewsByTags(c.Request.Context(), database.DB, tags)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Failed to look up tags", err)
		return
	}

	c.HTML(http.StatusOK, "tag_results.html", gin.H{
		"Title":   "Reviews by tag",
		"Tags":    tags,
		"Matches": matches,
	})
}

// GetReviewsByTags godoc
// @Summary      Find reviews by tag
// @Description  Returns one (reviewer, game, score, tag) entry per matching review. Repeated matches are removed.
// @Tags         tags
// @Produce      json
// @Param        tags  query     string  true  "Comma-separated tags; the parameter may repeat"
// @Success      200   {array}   service.TagMatch
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /tags/reviews [get]
func GetReviewsByTags(c *gin.Context) {
	tags := service.ParseTagQuery(c.QueryArray("tags"))
	if len(tags) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one tag is required"})
		return
	}

	matches, err := service.FindReviewsByTags(c.Request.Context(), database.DB, tags)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to look up tags"})
		return
	}
	c.JSON(http.StatusOK, matches)
}
