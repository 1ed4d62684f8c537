package catalog

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Kind distinguishes the two flat lookup tables a job references
type Kind string

const (
	KindCategory Kind = "category"
	KindJobType  Kind = "job_type"
)

// MaxNameLength mirrors the column width of the kind's table
func (k Kind) MaxNameLength() int {
	if k == KindJobType {
		return 50
	}
	return 100
}

// Term is a category or a job type
type Term struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// JobsCount is the number of active jobs referencing the term; read only
	JobsCount int
}

type Company struct {
	ID          kernel.CompanyID
	Name        string
	Description string
	Website     string
	LogoPath    kernel.BlobPath
	Location    string
	Size        string
	Industry    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	JobsCount int
}

func (c *Company) HasLogo() bool {
	return !c.LogoPath.IsEmpty()
}
