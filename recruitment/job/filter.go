package job

import (
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// Filter is the parsed form of the job listing query parameters.
// Zero values contribute no constraint.
type Filter struct {
	Search          string
	CategoryID      kernel.CategoryID
	CompanyID       kernel.CompanyID
	JobTypeID       kernel.JobTypeID
	Location        string
	IsRemote        *bool
	ExperienceLevel ExperienceLevel
	SalaryMin       decimal.NullDecimal
	SalaryMax       decimal.NullDecimal
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	Tags            []string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDateTime(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseFilter builds a Filter from raw query parameters. Unknown keys are
// ignored; malformed values yield JOB.INVALID_FILTER listing every bad field.
func ParseFilter(params map[string]string) (Filter, error) {
	var f Filter
	invalid := map[string]string{}

	get := func(key string) string {
		return strings.TrimSpace(params[key])
	}

	f.Search = get("search")
	f.CategoryID = kernel.CategoryID(get("category"))
	f.CompanyID = kernel.CompanyID(get("company"))
	f.JobTypeID = kernel.JobTypeID(get("job_type"))
	f.Location = get("location")

	if raw := get("is_remote"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid["is_remote"] = "Must be a boolean"
		} else {
			f.IsRemote = &b
		}
	}

	if raw := get("experience_level"); raw != "" {
		level := ExperienceLevel(raw)
		if !level.IsValid() {
			invalid["experience_level"] = "Must be one of: entry, mid, senior, executive"
		} else {
			f.ExperienceLevel = level
		}
	}

	for key, dst := range map[string]*decimal.NullDecimal{"salary_min": &f.SalaryMin, "salary_max": &f.SalaryMax} {
		raw := get(key)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			invalid[key] = "Must be a number"
			continue
		}
		*dst = decimal.NewNullDecimal(d)
	}

	for key, dst := range map[string]**time.Time{"created_after": &f.CreatedAfter, "created_before": &f.CreatedBefore} {
		raw := get(key)
		if raw == "" {
			continue
		}
		t, ok := parseDateTime(raw)
		if !ok {
			invalid[key] = "Must be a datetime (RFC 3339 or YYYY-MM-DD)"
			continue
		}
		*dst = &t
	}

	if raw := get("tags"); raw != "" {
		f.Tags = SplitTags(raw)
	}

	if len(invalid) > 0 {
		return Filter{}, ErrInvalidFilter().WithDetail("fields", invalid)
	}
	return f, nil
}

// Ordering selects one of the supported sort orders for listings
type Ordering string

const (
	OrderCreatedAsc    Ordering = "created_at"
	OrderCreatedDesc   Ordering = "-created_at"
	OrderTitleAsc      Ordering = "title"
	OrderTitleDesc     Ordering = "-title"
	OrderSalaryMinAsc  Ordering = "salary_min"
	OrderSalaryMinDesc Ordering = "-salary_min"
	OrderViewsAsc      Ordering = "views_count"
	OrderViewsDesc     Ordering = "-views_count"

	DefaultOrdering = OrderCreatedDesc
)

var orderings = map[Ordering]bool{
	OrderCreatedAsc: true, OrderCreatedDesc: true,
	OrderTitleAsc: true, OrderTitleDesc: true,
	OrderSalaryMinAsc: true, OrderSalaryMinDesc: true,
	OrderViewsAsc: true, OrderViewsDesc: true,
}

// ParseOrdering returns the ordering for raw, or the default when raw is
// empty or not supported
func ParseOrdering(raw string) Ordering {
	o := Ordering(strings.TrimSpace(raw))
	if orderings[o] {
		return o
	}
	return DefaultOrdering
}
