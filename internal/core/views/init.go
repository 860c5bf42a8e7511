// Package views registers the named aggregate views with the core registry.
// Import this package to ensure all views are registered.
package views

import "github.com/JonMunkholm/salaries/internal/core"

// Registry groups.
const (
	GroupDistribution = "Distribution"
	GroupSalary       = "Salary"
	GroupRemote       = "Remote work"
)

// aggregate returns a Build function reducing measure by dim with s, then
// applying order when it is non-nil.
func aggregate(dim core.Dimension, measure core.Measure, s core.Stat, order []string) func(*core.CleanTable) ([]core.Group, error) {
	return func(t *core.CleanTable) ([]core.Group, error) {
		groups, err := core.Aggregate(t, dim, measure, s)
		if err != nil {
			return nil, err
		}
		if order != nil {
			groups = core.OrderBy(groups, order)
		}
		return groups, nil
	}
}

func info(key, group, label, description string, dim core.Dimension, measure core.Measure, s core.Stat) core.ViewInfo {
	return core.ViewInfo{
		Key:         key,
		Group:       group,
		Label:       label,
		Description: description,
		Dimension:   dim.Name,
		Measure:     measure.Name,
		Stat:        s,
	}
}
