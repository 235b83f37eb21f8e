package reporting

import "time"

// Query bundles the filter and ordering of a report request.
type Query struct {
	Filter    Filter
	SortField SortField
	Direction Direction
}

// Report is a filtered, sorted view over a task set. Analytics always covers
// the whole set; FilteredAnalytics covers Entries only.
type Report struct {
	Entries           []Entry
	Analytics         Analytics
	FilteredAnalytics Analytics
}

// Build derives metrics for rows at now, then filters, sorts and aggregates them.
func Build(rows []Row, now time.Time, q Query) Report {
	all := Derive(rows, now)
	filtered := q.Filter.Apply(all)

	return Report{
		Entries:           Sort(filtered, q.SortField, q.Direction),
		Analytics:         Summarize(all),
		FilteredAnalytics: Summarize(filtered),
	}
}
