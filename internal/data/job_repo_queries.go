package data

import (
	"regexp"

	"github.com/jobtracker/jobtracker-api/internal/data/database"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

const jobsTable = "jobs"

func jobColumns() []string {
	return []string{
		"id",
		"company",
		"position",
		"status",
		"job_type",
		"job_location",
		"created_by",
		"created_at",
		"updated_at",
	}
}

// jobSortOrders maps sort keys to ORDER BY terms. id breaks ties so paging is stable.
var jobSortOrders = map[model.SortKey][]database.OrderTerm{
	model.SortLatest: {{Column: "created_at", Direction: "DESC"}, {Column: "id", Direction: "ASC"}},
	model.SortOldest: {{Column: "created_at", Direction: "ASC"}, {Column: "id", Direction: "ASC"}},
	model.SortAZ:     {{Column: "position", Direction: "ASC"}, {Column: "id", Direction: "ASC"}},
	model.SortZA:     {{Column: "position", Direction: "DESC"}, {Column: "id", Direction: "ASC"}},
}

// jobConditions builds the WHERE predicate shared by the count and page queries.
// Search is a case-insensitive substring match on position; regex metacharacters are escaped.
func jobConditions(q model.JobQuery) []database.Condition {
	conds := []database.Condition{
		database.Where("created_by", database.Equal, q.OwnerID),
	}
	if q.Status != nil {
		conds = append(conds, database.Where("status", database.Equal, string(*q.Status)))
	}
	if q.JobType != nil {
		conds = append(conds, database.Where("job_type", database.Equal, string(*q.JobType)))
	}
	if q.Search != "" {
		conds = append(conds, database.Where("position", database.IRegex, regexp.QuoteMeta(q.Search)))
	}
	return conds
}

// jobListQuery describes one page of q. An unknown sort key falls back to oldest first.
func jobListQuery(q model.JobQuery) database.ListQuery {
	order, ok := jobSortOrders[q.Sort]
	if !ok {
		order = jobSortOrders[model.SortOldest]
	}
	return database.ListQuery{
		Table:   jobsTable,
		Columns: jobColumns(),
		Where:   jobConditions(q),
		OrderBy: order,
		Page:    &database.Page{Limit: q.Limit, Offset: q.Offset()},
	}
}
