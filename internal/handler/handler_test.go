package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gamereviews/backend/internal/catalog"
	"gamereviews/backend/internal/config"
	"gamereviews/backend/internal/handler"
	"gamereviews/backend/internal/server"
	"gamereviews/backend/internal/testutil"
	"gamereviews/backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeCatalog struct {
	games   []catalog.Game
	err     error
	queries []catalog.Query
}

func (f *fakeCatalog) Search(_ context.Context, q catalog.Query) ([]catalog.Game, error) {
	f.queries = append(f.queries, q)
	return f.games, f.err
}

func setup(t *testing.T, searcher catalog.Searcher) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.UseTestDB(t)

	prevCatalog := handler.Catalog
	handler.Catalog = searcher
	t.Cleanup(func() { handler.Catalog = prevCatalog })

	prevConfig := config.AppConfig
	config.AppConfig = &config.Config{SessionSecret: testSecret}
	t.Cleanup(func() { config.AppConfig = prevConfig })

	tmpl, err := web.Templates()
	require.NoError(t, err)

	return server.NewRouter(zap.NewNop(), tmpl, []byte(testSecret)), db
}

func get(router http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router http.Handler, target string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func reviewForm(reviewer, game, score, tags string) url.Values {
	return url.Values{
		"reviewer": {reviewer},
		"name":     {game},
		"score":    {score},
		"tags":     {tags},
	}
}

var errCatalogDown = errors.New("HTTP 503: service unavailable")
