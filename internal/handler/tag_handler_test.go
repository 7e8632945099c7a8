package handler_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"gamereviews/backend/internal/service"
	"gamereviews/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagResults_DedupesRepeatedTags(t *testing.T) {
	router, db := setup(t, &fakeCatalog{})
	testutil.SeedGame(t, db, "Celeste")
	testutil.SeedGame(t, db, "Hades")
	require.Equal(t, http.StatusSeeOther, postForm(router, "/new", reviewForm("Jane", "Celeste", "9", "hard, short")).Code)
	require.Equal(t, http.StatusSeeOther, postForm(router, "/new", reviewForm("Sam", "Hades", "8", "hard")).Code)

	w := get(router, "/tag_results?tags=hard&tags=hard,%20hard")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, "<td>Jane</td><td>Celeste</td><td>9/10</td><td>hard</td>"))
	assert.Equal(t, 1, strings.Count(body, "<td>Sam</td><td>Hades</td><td>8/10</td><td>hard</td>"))

	w = get(router, "/api/v1/tags/reviews?tags=hard,short")
	require.Equal(t, http.StatusOK, w.Code)
	var matches []service.TagMatch
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	assert.Len(t, matches, 3)
}

func TestTagResults_NoMatches(t *testing.T) {
	router, _ := setup(t, &fakeCatalog{})

	w := get(router, "/tag_results?tags=cozy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No reviews carry these tags.")

	w = get(router, "/api/v1/tags/reviews?tags=cozy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTagResults_RequiresATag(t *testing.T) {
	router, _ := setup(t, &fakeCatalog{})

	w := get(router, "/tag_results?tags=%20,%20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter at least one tag.")

	w = get(router, "/api/v1/tags/reviews")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTagSearchForm(t *testing.T) {
	router, _ := setup(t, &fakeCatalog{})

	w := get(router, "/tags?tags=cozy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/tag_results"`)
	assert.Contains(t, w.Body.String(), `value="cozy"`)
}
