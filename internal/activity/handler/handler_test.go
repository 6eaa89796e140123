package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubUseCase struct {
	seen *dto.ActivityFilters
}

func (s *stubUseCase) ListActivity(_ context.Context, f *dto.ActivityFilters) ([]dto.ActivityResponse, int, error) {
	s.seen = f
	return []dto.ActivityResponse{{ID: "act-1", Action: f.Action, Details: []byte(`{"note":"n"}`)}}, 1, nil
}

func TestListActivity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	uc := &stubUseCase{}
	NewActivityHandler(uc, zaptest.NewLogger(t)).Register(router.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/activity?action=Double+Claim+Resolved&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Double Claim Resolved", uc.seen.Action)
	assert.Equal(t, 2, uc.seen.Page)
	assert.Equal(t, 10, uc.seen.PageSize)
	assert.Contains(t, w.Body.String(), `"details":{"note":"n"}`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
