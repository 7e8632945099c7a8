package handler

import (
	"net/http"

	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserResponse is a reviewer's public record.
type UserResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Jane"`
}

// ListUsers renders every reviewer.
func ListUsers(c *gin.Context) {
	users, err := service.ListUsers(c.Request.Context(), database.DB)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Failed to retrieve users", err)
		return
	}
	c.HTML(http.StatusOK, "names.html", gin.H{"Title": "Reviewers", "Users": users})
}

// GetUsers godoc
// @Summary      List reviewers
// @Description  Retrieves every reviewer in the order they first appeared.
// @Tags         users
// @Produce      json
// @Success      200  {array}   UserResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
func GetUsers(c *gin.Context) {
	users, err := service.ListUsers(c.Request.Context(), database.DB)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve users"})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, UserResponse{ID: user.ID, Name: user.Name})
	}
	c.JSON(http.StatusOK, response)
}
