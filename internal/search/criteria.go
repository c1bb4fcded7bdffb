// ABOUTME: Builds outbound catalog search parameters from user criteria
// ABOUTME: Drops filters left at the "todos" sentinel and empty queries

package search

import (
	"net/url"
	"strings"
)

// All is the sentinel value for a filter the user has not narrowed.
// Filters holding it are never sent to the backend.
const All = "todos"

// Criteria is a free-text query plus the fixed set of catalog filters.
type Criteria struct {
	Query        string
	MaterialType string // tipo
	YearRange    string // ano
	Language     string // idioma
	Availability string // disponibilidade
}

// NewCriteria returns criteria with every filter at the sentinel.
func NewCriteria() Criteria {
	return Criteria{
		MaterialType: All,
		YearRange:    All,
		Language:     All,
		Availability: All,
	}
}

// Build converts the criteria into the minimal outbound parameter set.
// An empty result is a valid unfiltered search; callers decide whether
// to submit it.
func (c Criteria) Build() url.Values {
	params := url.Values{}

	if q := strings.TrimSpace(c.Query); q != "" {
		params.Set("q", q)
	}
	setFilter(params, "tipo", c.MaterialType)
	setFilter(params, "ano", c.YearRange)
	setFilter(params, "idioma", c.Language)
	setFilter(params, "disponibilidade", c.Availability)

	return params
}

// Empty reports whether the criteria would produce no parameters at all.
func (c Criteria) Empty() bool {
	return len(c.Build()) == 0
}

func setFilter(params url.Values, key, value string) {
	if value != "" && value != All {
		params.Set(key, value)
	}
}
