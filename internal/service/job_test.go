package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
	"github.com/jobtracker/jobtracker-api/internal/mocks"
)

const (
	testOwner = "5f0c6a1e-8f3b-4c52-9a0d-2b7e4c1d9e11"
	testJobID = "0b9d8c7a-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

func newTestJobService(t *testing.T) (*JobService, *mocks.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockJobRepository(ctrl)
	return MustNewJobService(JobServiceOptions{Repo: repo, MaxPageLimit: 50}), repo
}

func TestNewJobService(t *testing.T) {
	_, err := NewJobService(JobServiceOptions{})
	require.Error(t, err)

	assert.Panics(t, func() { MustNewJobService(JobServiceOptions{}) })

	ctrl := gomock.NewController(t)
	svc, err := NewJobService(JobServiceOptions{Repo: mocks.NewMockJobRepository(ctrl)})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMaxLimit, svc.maxLimit)
}

func TestJobService_List(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q model.JobQuery) ([]*model.Job, int, error) {
			assert.Equal(t, testOwner, q.OwnerID)
			assert.Equal(t, model.SortAZ, q.Sort)
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, 5, q.Limit)
			assert.Equal(t, 5, q.Offset())
			return []*model.Job{{ID: "a"}, {ID: "b"}}, 12, nil
		})

	page, err := svc.List(context.Background(), testOwner, model.JobListParams{Sort: "a-z", Page: "2", Limit: "5"})
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 2)
	assert.Equal(t, 12, page.TotalJobs)
	assert.Equal(t, 3, page.NumOfPages)
}

func TestJobService_List_CapsLimitAndEmpty(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q model.JobQuery) ([]*model.Job, int, error) {
			assert.Equal(t, 50, q.Limit)
			assert.Equal(t, model.SortOldest, q.Sort)
			return nil, 0, nil
		})

	page, err := svc.List(context.Background(), testOwner, model.JobListParams{Sort: "sideways", Limit: "5000"})
	require.NoError(t, err)
	assert.NotNil(t, page.Jobs)
	assert.Empty(t, page.Jobs)
	assert.Equal(t, 0, page.NumOfPages)
}

func TestJobService_List_RejectsInvalidSearch(t *testing.T) {
	svc, _ := newTestJobService(t)

	for _, search := range []string{"\xff", "go\x00"} {
		_, err := svc.List(context.Background(), testOwner, model.JobListParams{Search: search})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "search %q", search)
		assert.Equal(t, "search", apperrors.GetField(err))
	}
}

func TestJobService_Create_ForcesOwner(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			assert.Equal(t, testOwner, req.CreatedBy)
			assert.Equal(t, model.JobStatusPending, req.Status)
			return &model.Job{ID: testJobID, CreatedBy: req.CreatedBy, Status: req.Status}, nil
		})

	job, err := svc.Create(context.Background(), testOwner, model.CreateJobRequest{
		Company:   "Acme",
		Position:  "Engineer",
		CreatedBy: "someone-else",
	})
	require.NoError(t, err)
	assert.Equal(t, testOwner, job.CreatedBy)
}

func TestJobService_Create_Invalid(t *testing.T) {
	svc, _ := newTestJobService(t)

	_, err := svc.Create(context.Background(), testOwner, model.CreateJobRequest{Company: "Acme"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "position", apperrors.GetField(err))

	_, err = svc.Create(context.Background(), testOwner, model.CreateJobRequest{
		Company: "Acme", Position: "Engineer", Status: "hired",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_Update(t *testing.T) {
	svc, repo := newTestJobService(t)

	declined := model.JobStatusDeclined
	repo.EXPECT().
		Update(gomock.Any(), testOwner, testJobID, gomock.Any()).
		Return(&model.Job{ID: testJobID, Status: declined}, nil)

	job, err := svc.Update(context.Background(), testOwner, testJobID, model.UpdateJobRequest{
		Company: "Acme", Position: "Engineer", Status: &declined,
	})
	require.NoError(t, err)
	assert.Equal(t, declined, job.Status)
}

func TestJobService_Update_RequiresCompanyAndPosition(t *testing.T) {
	svc, _ := newTestJobService(t)

	for _, req := range []model.UpdateJobRequest{
		{Company: "Acme"},
		{Position: "Engineer"},
		{Company: "  ", Position: "Engineer"},
	} {
		_, err := svc.Update(context.Background(), testOwner, testJobID, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, msgMissingCompanyPosition, err.Error())
	}
}

func TestJobService_Update_NotFoundPassesThrough(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().
		Update(gomock.Any(), testOwner, testJobID, gomock.Any()).
		Return(nil, apperrors.NotFoundf("No job with id %s", testJobID))

	_, err := svc.Update(context.Background(), testOwner, testJobID, model.UpdateJobRequest{Company: "A", Position: "B"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_Delete(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().Delete(gomock.Any(), testOwner, testJobID).Return(true, nil)
	require.NoError(t, svc.Delete(context.Background(), testOwner, testJobID))

	repo.EXPECT().Delete(gomock.Any(), testOwner, testJobID).Return(false, nil)
	err := svc.Delete(context.Background(), testOwner, testJobID)
	assert.True(t, apperrors.IsNotFound(err))

	repo.EXPECT().Delete(gomock.Any(), testOwner, testJobID).Return(false, errors.New("db down"))
	err = svc.Delete(context.Background(), testOwner, testJobID)
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestJobService_Stats(t *testing.T) {
	svc, repo := newTestJobService(t)

	repo.EXPECT().Stats(gomock.Any(), testOwner).Return(&model.JobStats{
		DefaultStats: model.StatusCounts{Pending: 1},
	}, nil)

	stats, err := svc.Stats(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DefaultStats.Pending)
	assert.NotNil(t, stats.MonthlyApplications)

	repo.EXPECT().Stats(gomock.Any(), "bad").Return(nil, apperrors.InvalidIdentity("bad", errors.New("invalid UUID")))
	_, err = svc.Stats(context.Background(), "bad")
	assert.True(t, apperrors.IsInvalidIdentity(err))
}
