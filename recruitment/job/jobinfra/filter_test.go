package jobinfra

import (
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibilityAlwaysApplied(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	w := &whereBuilder{}
	applyVisibility(w, now)
	applyFilter(w, job.Filter{})

	assert.Equal(t, " WHERE j.status = $1 AND (j.expires_at IS NULL OR j.expires_at > $2)", w.sql())
	assert.Equal(t, []any{"active", now}, w.args)
}

func TestSearchCoversJoinedCompanyName(t *testing.T) {
	w := &whereBuilder{}
	applyFilter(w, job.Filter{Search: "techcorp"})

	require.Len(t, w.conditions, 1)
	assert.Contains(t, w.conditions[0], "c.name ILIKE $1")
	assert.Contains(t, w.conditions[0], "j.tags ILIKE $1")
	assert.Equal(t, []any{"%techcorp%"}, w.args)
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	w := &whereBuilder{}
	applyFilter(w, job.Filter{Search: "50%_off"})

	assert.Equal(t, []any{`%50\%\_off%`}, w.args)
}

func TestTagsAreOredInsideOneCondition(t *testing.T) {
	f, err := job.ParseFilter(map[string]string{"tags": "java, ,django"})
	require.NoError(t, err)

	w := &whereBuilder{}
	applyFilter(w, f)

	require.Len(t, w.conditions, 1)
	assert.Equal(t, "(j.tags ILIKE $1 OR j.tags ILIKE $2)", w.conditions[0])
	assert.Equal(t, []any{"%java%", "%django%"}, w.args)
}

func TestAllFiltersAreAndedInOrder(t *testing.T) {
	f, err := job.ParseFilter(map[string]string{
		"category":         "cat-1",
		"company":          "co-1",
		"job_type":         "jt-1",
		"location":         "Lima",
		"is_remote":        "true",
		"experience_level": "senior",
		"salary_min":       "40000",
		"salary_max":       "90000",
		"created_after":    "2026-01-01",
		"created_before":   "2026-02-01T00:00:00Z",
	})
	require.NoError(t, err)

	w := &whereBuilder{}
	applyVisibility(w, time.Now())
	applyFilter(w, f)

	assert.Equal(t, []string{
		"j.status = $1",
		"(j.expires_at IS NULL OR j.expires_at > $2)",
		"j.category_id = $3",
		"j.company_id = $4",
		"j.job_type_id = $5",
		"j.location ILIKE $6",
		"j.is_remote = $7",
		"j.experience_level = $8",
		"j.salary_min >= $9",
		"j.salary_max <= $10",
		"j.created_at >= $11",
		"j.created_at <= $12",
	}, w.conditions)
	assert.Len(t, w.args, 12)
	assert.Equal(t, "%Lima%", w.args[5])
	assert.Equal(t, true, w.args[6])
}

func TestOrderClauseWhitelist(t *testing.T) {
	assert.Equal(t, "j.created_at DESC, j.id ASC", orderClause(job.DefaultOrdering))
	assert.Equal(t, "j.views_count DESC, j.id ASC", orderClause(job.OrderViewsDesc))
	assert.Equal(t, "j.salary_min ASC, j.id ASC", orderClause(job.ParseOrdering("salary_min")))
	assert.Equal(t, "j.created_at DESC, j.id ASC", orderClause(job.Ordering("id; DROP TABLE jobs")))
}
