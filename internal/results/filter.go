package results

import (
	"github.com/sahilm/fuzzy"
)

type reportSource []ReportFile

func (r reportSource) String(i int) string { return r[i].Name }
func (r reportSource) Len() int            { return len(r) }

// Filter fuzzy-matches query against report names, best match first.
// An empty query returns reports unchanged.
func Filter(reports []ReportFile, query string) []ReportFile {
	if query == "" {
		return reports
	}
	matches := fuzzy.FindFrom(query, reportSource(reports))
	out := make([]ReportFile, 0, len(matches))
	for _, m := range matches {
		out = append(out, reports[m.Index])
	}
	return out
}
