package generator

import (
	"slices"

	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

// Fixed index page names.
const (
	IndexTemplate = "generic.index.template.html"
	IndexFilename = "index.html"
)

// GroupIndexData builds the index template data: every unit's summary in
// (group, name) order, the distinct groups in first-seen order, and the
// run stamps.
func GroupIndexData(units []*workunit.Unit, rc config.RunContext) map[string]any {
	sorted := slices.Clone(units)
	workunit.Sort(sorted)

	data := make([]map[string]string, 0, len(sorted))
	var groups []map[string]string
	seen := make(map[string]bool)
	for _, u := range sorted {
		data = append(data, u.IndexDataMap())
		if seen[u.Group] {
			continue
		}
		seen[u.Group] = true
		groups = append(groups, map[string]string{
			"name":    u.Group,
			"summary": u.Feature.Summary,
		})
	}

	return map[string]any{
		"data":      data,
		"groups":    groups,
		"timestamp": rc.BuildTimestamp,
		"version":   rc.AbsoluteVersion,
	}
}
