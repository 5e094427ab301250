// Package query turns listing query parameters into a catalog filter.
package query

import (
	"math"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"jobboard/internal/feature/jobs/domain/entity"
)

// TypeAll disables the employment type filter.
const TypeAll = "All"

// Filter narrows a job listing. Zero values mean "no condition".
type Filter struct {
	// Search is matched case-insensitively as a substring of title,
	// description, requirements or company.
	Search string
	// Location is matched case-insensitively as a substring.
	Location string
	// Type is compared exactly. Unknown values match nothing.
	Type entity.EmploymentType
	// MinSalary keeps jobs whose MaxSalary reaches it.
	MinSalary *float64
	// MaxSalary keeps jobs whose MinSalary does not exceed it.
	MaxSalary *float64
}

// IsZero reports whether the filter has no conditions.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Location == "" && f.Type == "" && f.MinSalary == nil && f.MaxSalary == nil
}

// FromValues reads search, location, type, minSalary and maxSalary.
// Blank strings and unparsable numbers are ignored.
func FromValues(values url.Values) Filter {
	f := Filter{
		Search:   strings.TrimSpace(values.Get("search")),
		Location: strings.TrimSpace(values.Get("location")),
	}
	if t := strings.TrimSpace(values.Get("type")); t != "" && t != TypeAll {
		f.Type = entity.EmploymentType(t)
	}
	f.MinSalary = floatParam(values, "minSalary")
	f.MaxSalary = floatParam(values, "maxSalary")
	return f
}

func floatParam(values url.Values, name string) *float64 {
	var v float64
	if strings.TrimSpace(values.Get(name)) == "" {
		return nil
	}
	if err := runtime.BindQueryParameter("form", true, false, name, values, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// LikePattern lowercases term, escapes LIKE wildcards with a backslash and
// wraps it in %...% for a substring match.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
