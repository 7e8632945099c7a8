package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gamereviews/backend/internal/catalog"
	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/logger"
	"gamereviews/backend/internal/models"
	"gamereviews/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recentGamesLimit caps the /results listing.
const recentGamesLimit = 25

// region --- DTOs ---

// SearchForm holds the catalog search fields.
type SearchForm struct {
	Name     string `form:"name"`
	Platform string `form:"platform"`
	Sort     string `form:"sort"`
}

func (f *SearchForm) applyDefaults() {
	f.Name = strings.TrimSpace(f.Name)
	if f.Platform == "" {
		f.Platform = catalog.Platforms[0].Value
	}
	if f.Sort == "" {
		f.Sort = catalog.SortKeys[0].Value
	}
}

func (f SearchForm) validate() []string {
	var errs []string
	if !catalog.IsValidPlatform(f.Platform) {
		errs = append(errs, "Please choose one of the listed platforms.")
	}
	if !catalog.IsValidSort(f.Sort) {
		errs = append(errs, "Please choose one of the listed sort orders.")
	}
	return errs
}

type GameResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline"`
	Rating    string    `json:"rating"`
	Platforms string    `json:"platforms"`
	CreatedAt time.Time `json:"created_at"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:        game.ID,
		Name:      game.Name,
		Tagline:   game.Tagline,
		Rating:    game.Rating,
		Platforms: game.Platforms,
		CreatedAt: game.CreatedAt,
	}
}

// endregion

// region --- Pages ---

func renderSearchForm(c *gin.Context, status int, form SearchForm, errs []string) {
	c.HTML(status, "search.html", gin.H{
		"Title":     "Search for a game",
		"Form":      form,
		"Platforms": catalog.Platforms,
		"SortKeys":  catalog.SortKeys,
		"Errors":    errs,
	})
}

// Home renders the catalog search form.
func Home(c *gin.Context) {
	var form SearchForm
	form.applyDefaults()
	renderSearchForm(c, http.StatusOK, form, nil)
}

// SearchGames queries the catalog, stores any games not seen before and
// renders the results. The results are shown even if storing them fails.
func SearchGames(c *gin.Context) {
	// A bare GET /search shows the form.
	if c.Request.Method == http.MethodGet && c.Request.URL.RawQuery == "" {
		Home(c)
		return
	}

	var form SearchForm
	if err := c.ShouldBind(&form); err != nil {
		renderSearchForm(c, http.StatusBadRequest, form, []string{"Could not read the search form."})
		return
	}
	form.applyDefaults()
	if errs := form.validate(); len(errs) > 0 {
		renderSearchForm(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	ctx := c.Request.Context()
	games, err := Catalog.Search(ctx, catalog.Query{
		Name:     form.Name,
		Platform: form.Platform,
		Sort:     form.Sort,
		Limit:    catalog.DefaultLimit,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrMissingAPIKey) {
			renderError(c, http.StatusServiceUnavailable, "Catalog is not configured", err)
			return
		}
		renderError(c, http.StatusBadGateway, "Catalog search failed", err)
		return
	}

	log := logger.FromGin(c)
	inserted, err := service.SaveGames(ctx, database.DB, games)
	if err != nil {
		log.Warn("Failed to store search results", zap.Error(err))
	} else {
		log.Debug("Stored search results", zap.Int("found", len(games)), zap.Int("inserted", inserted))
	}

	c.HTML(http.StatusOK, "game_results.html", gin.H{
		"Title":   "Search results",
		"Form":    form,
		"Results": games,
	})
}

// ListGames renders every stored game.
func ListGames(c *gin.Context) {
	games, err := service.ListGames(c.Request.Context(), database.DB)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Failed to retrieve games", err)
		return
	}
	c.HTML(http.StatusOK, "games.html", gin.H{"Title": "All games", "Games": games})
}

// RecentGames renders the most recently stored games.
func RecentGames(c *gin.Context) {
	games, err := service.RecentGames(c.Request.Context(), database.DB, recentGamesLimit)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Failed to retrieve games", err)
		return
	}
	c.HTML(http.StatusOK, "games.html", gin.H{"Title": "Recently added games", "Games": games})
}

// endregion

// region --- API ---

// GetGames godoc
// @Summary      List games
// @Description  Retrieves every game stored from catalog searches, ordered by name.
// @Tags         games
// @Produce      json
// @Success      200  {array}   GameResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	games, err := service.ListGames(c.Request.Context(), database.DB)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// endregion
