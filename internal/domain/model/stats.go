package model

import "time"

// MaxMonthlyApplications bounds the monthly series to the most recent months with data.
const MaxMonthlyApplications = 6

// StatusCounts always carries all three statuses, zero when absent.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Declined  int `json:"declined"`
}

// Add increments the counter for status by n. Unknown statuses are ignored.
func (c *StatusCounts) Add(status JobStatus, n int) {
	switch status {
	case JobStatusPending:
		c.Pending += n
	case JobStatusInterview:
		c.Interview += n
	case JobStatusDeclined:
		c.Declined += n
	}
}

// MonthlyApplication is the number of jobs created in one calendar month.
type MonthlyApplication struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// JobStats summarizes a user's applications.
type JobStats struct {
	DefaultStats        StatusCounts         `json:"defaultStats"`
	MonthlyApplications []MonthlyApplication `json:"monthlyApplications"`
}

// MonthLabel renders a year and month as "Jan 2024".
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
