package job

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gosimple/slug"
)

// maxSlugBase leaves room for a "-NNN" suffix inside the 250 char column
const maxSlugBase = 240

// BaseSlug derives the slug from the title and the company name
func BaseSlug(title, companyName string) kernel.Slug {
	s := slug.Make(strings.TrimSpace(title + " " + companyName))
	if len(s) > maxSlugBase {
		s = strings.TrimRight(s[:maxSlugBase], "-")
	}
	if s == "" {
		s = "job"
	}
	return kernel.Slug(s)
}

// SlugCandidate returns the n-th candidate for base: base, base-2, base-3...
func SlugCandidate(base kernel.Slug, n int) kernel.Slug {
	if n <= 1 {
		return base
	}
	return kernel.Slug(fmt.Sprintf("%s-%d", base, n))
}
