package data

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker/jobtracker-api/internal/data/database"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

const ownerA = "7d4a3b1c-2e5f-4a6b-8c9d-0e1f2a3b4c5d"

const jobSelectPrefix = `SELECT "id", "company", "position", "status", "job_type", "job_location", ` +
	`"created_by", "created_at", "updated_at" FROM "jobs"`

func TestJobListQueries(t *testing.T) {
	pending := model.JobStatusPending
	remote := model.JobTypeRemote

	tests := []struct {
		name      string
		query     model.JobQuery
		wantCount string
		wantPage  string
		wantArgs  []any
	}{
		{
			name:      "owner only with default order",
			query:     model.JobQuery{OwnerID: ownerA, Sort: model.SortOldest, Page: 1, Limit: 10},
			wantCount: `SELECT COUNT(*) FROM "jobs" WHERE "created_by" = $1`,
			wantPage:  jobSelectPrefix + ` WHERE "created_by" = $1 ORDER BY "created_at" ASC, "id" ASC LIMIT $2 OFFSET $3`,
			wantArgs:  []any{ownerA, 10, 0},
		},
		{
			name: "all filters",
			query: model.JobQuery{
				OwnerID: ownerA,
				Status:  &pending,
				JobType: &remote,
				Search:  "dev",
				Sort:    model.SortLatest,
				Page:    3,
				Limit:   5,
			},
			wantCount: `SELECT COUNT(*) FROM "jobs" WHERE "created_by" = $1 AND "status" = $2 AND "job_type" = $3 AND "position" ~* $4`,
			wantPage: jobSelectPrefix + ` WHERE "created_by" = $1 AND "status" = $2 AND "job_type" = $3 AND "position" ~* $4` +
				` ORDER BY "created_at" DESC, "id" ASC LIMIT $5 OFFSET $6`,
			wantArgs: []any{ownerA, "pending", "remote", "dev", 5, 10},
		},
		{
			name:      "alphabetical",
			query:     model.JobQuery{OwnerID: ownerA, Sort: model.SortAZ, Page: 2, Limit: 5},
			wantCount: `SELECT COUNT(*) FROM "jobs" WHERE "created_by" = $1`,
			wantPage:  jobSelectPrefix + ` WHERE "created_by" = $1 ORDER BY "position" ASC, "id" ASC LIMIT $2 OFFSET $3`,
			wantArgs:  []any{ownerA, 5, 5},
		},
		{
			name:      "reverse alphabetical",
			query:     model.JobQuery{OwnerID: ownerA, Sort: model.SortZA, Page: 1, Limit: 10},
			wantCount: `SELECT COUNT(*) FROM "jobs" WHERE "created_by" = $1`,
			wantPage:  jobSelectPrefix + ` WHERE "created_by" = $1 ORDER BY "position" DESC, "id" ASC LIMIT $2 OFFSET $3`,
			wantArgs:  []any{ownerA, 10, 0},
		},
		{
			name:      "unknown sort falls back to oldest",
			query:     model.JobQuery{OwnerID: ownerA, Sort: "bogus", Page: 1, Limit: 10},
			wantCount: `SELECT COUNT(*) FROM "jobs" WHERE "created_by" = $1`,
			wantPage:  jobSelectPrefix + ` WHERE "created_by" = $1 ORDER BY "created_at" ASC, "id" ASC LIMIT $2 OFFSET $3`,
			wantArgs:  []any{ownerA, 10, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lq := jobListQuery(tt.query)

			countSQL, countArgs := lq.CountSQL()
			pageSQL, pageArgs := lq.PageSQL()

			assert.Equal(t, tt.wantCount, countSQL)
			assert.Equal(t, tt.wantPage, pageSQL)
			assert.Equal(t, tt.wantArgs, pageArgs)
			assert.Equal(t, pageArgs[:len(countArgs)], countArgs, "count args must prefix page args")
		})
	}
}

func TestJobConditions_SearchEscapesRegex(t *testing.T) {
	conds := jobConditions(model.JobQuery{OwnerID: ownerA, Search: "c++ (senior)"})

	assert.Len(t, conds, 2)
	assert.Equal(t, "position", conds[1].Field)
	assert.Equal(t, database.IRegex, conds[1].Op)
	assert.Equal(t, `c\+\+ \(senior\)`, conds[1].Value)
}

func TestJobListQuery_HugePageKeepsOffset(t *testing.T) {
	q := model.JobListParams{Page: "922337203685477582", Limit: "10"}.Normalize(ownerA, 100)

	pageSQL, args := jobListQuery(q).PageSQL()

	assert.Contains(t, pageSQL, "LIMIT $2 OFFSET $3")
	if assert.Len(t, args, 3) {
		offset, ok := args[2].(int)
		assert.True(t, ok)
		assert.Positive(t, offset)
	}
}

var ownerPlaceholder = regexp.MustCompile(`created_by = \$(\d+)`)

func TestJobKeyedQueries_BindOwner(t *testing.T) {
	const jobID = "0b9d8c7a-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	status := model.JobStatusDeclined

	tests := []struct {
		name  string
		query string
		args  []any
	}{
		{name: "get", query: jobGetByIDQuery, args: jobKeyArgs(ownerA, jobID)},
		{
			name:  "update",
			query: jobUpdateQuery,
			args:  jobUpdateArgs(ownerA, jobID, model.UpdateJobRequest{Company: "Acme", Position: "Dev", Status: &status}, time.Now()),
		},
		{name: "delete", query: jobDeleteQuery, args: jobKeyArgs(ownerA, jobID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ownerPlaceholder.FindAllStringSubmatch(tt.query, -1)
			require.Len(t, m, 1, "query must filter on created_by exactly once")

			n, err := strconv.Atoi(m[0][1])
			require.NoError(t, err)
			require.LessOrEqual(t, n, len(tt.args))
			assert.Equal(t, ownerA, tt.args[n-1])
			assert.Contains(t, tt.args, jobID)
		})
	}
}
