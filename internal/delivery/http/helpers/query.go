package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"meetgrid/internal/domain"
)

// QueryBool reads a boolean query parameter. Missing or unparsable values
// fall back to def.
func QueryBool(r *http.Request, name string, def bool) bool {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

// QueryList reads a comma-separated query parameter; repeated parameters are
// concatenated. Empty items are dropped.
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// ParseSummaryQuery reads tz, if_needed, best and response_ids from the query string.
func ParseSummaryQuery(r *http.Request) domain.SummaryQuery {
	return domain.SummaryQuery{
		Timezone:        strings.TrimSpace(r.URL.Query().Get("tz")),
		IncludeIfNeeded: QueryBool(r, "if_needed", false),
		BestOnly:        QueryBool(r, "best", false),
		ResponseIDs:     QueryList(r, "response_ids"),
	}
}
