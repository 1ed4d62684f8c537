package jobinfra

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/pgutil"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

// whereBuilder accumulates AND-ed conditions with positional arguments
type whereBuilder struct {
	conditions []string
	args       []any
}

// next registers an argument and returns its placeholder
func (w *whereBuilder) next(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *whereBuilder) sql() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// applyVisibility restricts to jobs the public may see
func applyVisibility(w *whereBuilder, now time.Time) {
	w.add("j.status = " + w.next(string(job.StatusActive)))
	w.add("(j.expires_at IS NULL OR j.expires_at > " + w.next(now) + ")")
}

func applyFilter(w *whereBuilder, f job.Filter) {
	if f.Search != "" {
		p := w.next(pgutil.ContainsPattern(f.Search))
		w.add(fmt.Sprintf(
			"(j.title ILIKE %[1]s OR j.description ILIKE %[1]s OR c.name ILIKE %[1]s OR j.location ILIKE %[1]s OR j.tags ILIKE %[1]s)", p))
	}
	if !f.CategoryID.IsEmpty() {
		w.add("j.category_id = " + w.next(f.CategoryID.String()))
	}
	if !f.CompanyID.IsEmpty() {
		w.add("j.company_id = " + w.next(f.CompanyID.String()))
	}
	if !f.JobTypeID.IsEmpty() {
		w.add("j.job_type_id = " + w.next(f.JobTypeID.String()))
	}
	if f.Location != "" {
		w.add("j.location ILIKE " + w.next(pgutil.ContainsPattern(f.Location)))
	}
	if f.IsRemote != nil {
		w.add("j.is_remote = " + w.next(*f.IsRemote))
	}
	if f.ExperienceLevel != "" {
		w.add("j.experience_level = " + w.next(string(f.ExperienceLevel)))
	}
	if f.SalaryMin.Valid {
		w.add("j.salary_min >= " + w.next(f.SalaryMin.Decimal))
	}
	if f.SalaryMax.Valid {
		w.add("j.salary_max <= " + w.next(f.SalaryMax.Decimal))
	}
	if f.CreatedAfter != nil {
		w.add("j.created_at >= " + w.next(*f.CreatedAfter))
	}
	if f.CreatedBefore != nil {
		w.add("j.created_at <= " + w.next(*f.CreatedBefore))
	}
	if len(f.Tags) > 0 {
		ors := make([]string, 0, len(f.Tags))
		for _, tag := range f.Tags {
			ors = append(ors, "j.tags ILIKE "+w.next(pgutil.ContainsPattern(tag)))
		}
		w.add("(" + strings.Join(ors, " OR ") + ")")
	}
}

var orderClauses = map[job.Ordering]string{
	job.OrderCreatedAsc:    "j.created_at ASC",
	job.OrderCreatedDesc:   "j.created_at DESC",
	job.OrderTitleAsc:      "j.title ASC",
	job.OrderTitleDesc:     "j.title DESC",
	job.OrderSalaryMinAsc:  "j.salary_min ASC",
	job.OrderSalaryMinDesc: "j.salary_min DESC",
	job.OrderViewsAsc:      "j.views_count ASC",
	job.OrderViewsDesc:     "j.views_count DESC",
}

// orderClause maps an ordering to SQL; the id tiebreak keeps pages stable
func orderClause(o job.Ordering) string {
	clause, ok := orderClauses[o]
	if !ok {
		clause = orderClauses[job.DefaultOrdering]
	}
	return clause + ", j.id ASC"
}
