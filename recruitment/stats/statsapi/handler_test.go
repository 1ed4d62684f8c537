package statsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/cachex"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/recruitment/stats"
	"github.com/Abraxas-365/jobboard/recruitment/stats/statssrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRepo struct{}

func (fixedRepo) Count(ctx context.Context) (*stats.Statistics, error) {
	return &stats.Statistics{TotalActiveJobs: 7, TotalCompanies: 3, TotalApplications: 11, TotalCategories: 5}, nil
}

func TestGetStatistics(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler})
	RegisterRoutes(app, NewHandlers(statssrv.NewService(fixedRepo{}, cachex.NewMemoryStore(), time.Minute)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/statistics/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]int{
		"total_active_jobs":  7,
		"total_companies":    3,
		"total_applications": 11,
		"total_categories":   5,
	}, body)
}
