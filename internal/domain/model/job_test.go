package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker/jobtracker-api/internal/domain/validation"
)

func TestJobStatus_Valid(t *testing.T) {
	for _, s := range JobStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, JobStatus("accepted").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobType_Valid(t *testing.T) {
	for _, jt := range JobTypes() {
		assert.True(t, jt.Valid(), jt)
	}
	assert.False(t, JobType("contract").Valid())
}

func TestCreateJobRequest_Validate_Defaults(t *testing.T) {
	req := &CreateJobRequest{Company: "  Acme ", Position: " Go Developer "}
	require.NoError(t, req.Validate())

	assert.Equal(t, "Acme", req.Company)
	assert.Equal(t, "Go Developer", req.Position)
	assert.Equal(t, JobStatusPending, req.Status)
	assert.Equal(t, JobTypeFullTime, req.JobType)
	assert.Equal(t, DefaultJobLocation, req.JobLocation)
}

func TestCreateJobRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateJobRequest
		wantField string
	}{
		{name: "missing company", req: CreateJobRequest{Position: "dev"}, wantField: "company"},
		{name: "missing position", req: CreateJobRequest{Company: "acme"}, wantField: "position"},
		{name: "company too long", req: CreateJobRequest{Company: strings.Repeat("a", 51), Position: "dev"}, wantField: "company"},
		{name: "position too long", req: CreateJobRequest{Company: "acme", Position: strings.Repeat("p", 101)}, wantField: "position"},
		{name: "bad status", req: CreateJobRequest{Company: "acme", Position: "dev", Status: "hired"}, wantField: "status"},
		{name: "bad job type", req: CreateJobRequest{Company: "acme", Position: "dev", JobType: "gig"}, wantField: "jobType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var verr *validation.Error
			require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestUpdateJobRequest_Validate(t *testing.T) {
	empty := JobStatus("")
	loc := "  Remote, EU "
	req := &UpdateJobRequest{Company: "Acme", Position: "SRE", Status: &empty, JobLocation: &loc}
	require.NoError(t, req.Validate())
	assert.Nil(t, req.Status, "empty status should leave the column unchanged")
	assert.Equal(t, "Remote, EU", *req.JobLocation)

	bad := JobType("gig")
	req = &UpdateJobRequest{Company: "Acme", Position: "SRE", JobType: &bad}
	err := req.Validate()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "jobType", verr.Field)
}
