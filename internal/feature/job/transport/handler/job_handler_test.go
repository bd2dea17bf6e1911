package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/feature/job/usecase"
)

// mockJobUsecase is a mock implementation of JobUsecase.
type mockJobUsecase struct {
	CreateJobFunc       func(ctx context.Context, in entity.NewJob) (*entity.Job, error)
	GetJobByIDFunc      func(ctx context.Context, id uint) (*entity.Job, error)
	GetAllJobsFunc      func(ctx context.Context, page, limit int) (*entity.PagedJobs, error)
	SearchJobsFunc      func(ctx context.Context, query string, page, limit int) (*entity.PagedJobs, error)
	GetJobsBySkillsFunc func(ctx context.Context, skills []string, page, limit int) (*entity.PagedJobs, error)
	UpdateJobFunc       func(ctx context.Context, id uint, upd entity.JobUpdate) (*entity.Job, error)
	DeleteJobFunc       func(ctx context.Context, id uint) (*entity.Job, error)
}

var errNotImplemented = errors.New("not implemented")

func (m *mockJobUsecase) CreateJob(ctx context.Context, in entity.NewJob) (*entity.Job, error) {
	if m.CreateJobFunc != nil {
		return m.CreateJobFunc(ctx, in)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) GetJobByID(ctx context.Context, id uint) (*entity.Job, error) {
	if m.GetJobByIDFunc != nil {
		return m.GetJobByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) GetAllJobs(ctx context.Context, page, limit int) (*entity.PagedJobs, error) {
	if m.GetAllJobsFunc != nil {
		return m.GetAllJobsFunc(ctx, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) SearchJobs(ctx context.Context, query string, page, limit int) (*entity.PagedJobs, error) {
	if m.SearchJobsFunc != nil {
		return m.SearchJobsFunc(ctx, query, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) GetJobsBySkills(ctx context.Context, skills []string, page, limit int) (*entity.PagedJobs, error) {
	if m.GetJobsBySkillsFunc != nil {
		return m.GetJobsBySkillsFunc(ctx, skills, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) UpdateJob(ctx context.Context, id uint, upd entity.JobUpdate) (*entity.Job, error) {
	if m.UpdateJobFunc != nil {
		return m.UpdateJobFunc(ctx, id, upd)
	}
	return nil, errNotImplemented
}

func (m *mockJobUsecase) DeleteJob(ctx context.Context, id uint) (*entity.Job, error) {
	if m.DeleteJobFunc != nil {
		return m.DeleteJobFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func newRouter(h *JobHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/search", h.SearchJobs)
	r.GET("/jobs/by-skills", h.JobsBySkills)
	r.GET("/jobs/:id", h.GetJob)
	r.POST("/jobs", h.CreateJob)
	r.PUT("/jobs/:id", h.UpdateJob)
	r.DELETE("/jobs/:id", h.DeleteJob)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestJobHandler_ListJobs(t *testing.T) {
	var gotPage, gotLimit int
	uc := &mockJobUsecase{GetAllJobsFunc: func(_ context.Context, page, limit int) (*entity.PagedJobs, error) {
		gotPage, gotLimit = page, limit
		return &entity.PagedJobs{Jobs: []entity.Job{{ID: 1, Title: "Go Dev", Skills: []string{}}}, Total: 1, Page: page, Limit: limit, TotalPages: 1}, nil
	}}

	w := do(newRouter(NewJobHandler(uc)), http.MethodGet, "/jobs?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotLimit)

	var body entity.PagedJobs
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	assert.Equal(t, "Go Dev", body.Jobs[0].Title)
}

func TestJobHandler_ListJobs_BadPagingFallsThrough(t *testing.T) {
	var gotPage, gotLimit int
	uc := &mockJobUsecase{GetAllJobsFunc: func(_ context.Context, page, limit int) (*entity.PagedJobs, error) {
		gotPage, gotLimit = page, limit
		return &entity.PagedJobs{Jobs: []entity.Job{}}, nil
	}}

	w := do(newRouter(NewJobHandler(uc)), http.MethodGet, "/jobs?page=abc&limit=", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, gotPage)
	assert.Equal(t, 0, gotLimit)
}

func TestJobHandler_SearchJobs(t *testing.T) {
	var gotQuery string
	uc := &mockJobUsecase{SearchJobsFunc: func(_ context.Context, q string, _, _ int) (*entity.PagedJobs, error) {
		gotQuery = q
		return &entity.PagedJobs{Jobs: []entity.Job{}}, nil
	}}

	w := do(newRouter(NewJobHandler(uc)), http.MethodGet, "/jobs/search?q=+backend+", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "backend", gotQuery)
}

func TestJobHandler_JobsBySkills(t *testing.T) {
	var got []string
	uc := &mockJobUsecase{GetJobsBySkillsFunc: func(_ context.Context, skills []string, _, _ int) (*entity.PagedJobs, error) {
		got = skills
		return &entity.PagedJobs{Jobs: []entity.Job{}}, nil
	}}

	w := do(newRouter(NewJobHandler(uc)), http.MethodGet, "/jobs/by-skills?skills=Go,+SQL,,", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Go", "SQL"}, got)
}

func TestJobHandler_GetJob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		job      *entity.Job
		err      error
		wantCode int
	}{
		{"found", "/jobs/7", &entity.Job{ID: 7, Title: "SRE"}, nil, http.StatusOK},
		{"absent", "/jobs/7", nil, nil, http.StatusNotFound},
		{"invalid id", "/jobs/seven", nil, nil, http.StatusBadRequest},
		{"zero id", "/jobs/0", nil, nil, http.StatusBadRequest},
		{"store failure", "/jobs/7", nil, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockJobUsecase{GetJobByIDFunc: func(_ context.Context, id uint) (*entity.Job, error) {
				assert.Equal(t, uint(7), id)
				return tt.job, tt.err
			}}

			w := do(newRouter(NewJobHandler(uc)), http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "db down")
			}
		})
	}
}

func TestJobHandler_CreateJob(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"created", `{"title":"Go Dev","company":"Acme","skills":["Go"]}`, nil, http.StatusCreated},
		{"missing title", `{"company":"Acme"}`, nil, http.StatusBadRequest},
		{"bad link", `{"title":"Go Dev","company":"Acme","applicationLink":"not a url"}`, nil, http.StatusBadRequest},
		{"duplicate", `{"title":"Go Dev","company":"Acme"}`, usecase.ErrDuplicateJob, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockJobUsecase{CreateJobFunc: func(_ context.Context, in entity.NewJob) (*entity.Job, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				assert.Equal(t, fixed, in.PostedDate, "postedDate defaults to now")
				return &entity.Job{ID: 1, Title: in.Title, Skills: in.Skills}, nil
			}}
			h := NewJobHandler(uc)
			h.now = func() time.Time { return fixed }

			w := do(newRouter(h), http.MethodPost, "/jobs", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestJobHandler_UpdateJob(t *testing.T) {
	var got entity.JobUpdate
	uc := &mockJobUsecase{UpdateJobFunc: func(_ context.Context, id uint, upd entity.JobUpdate) (*entity.Job, error) {
		got = upd
		if id == 404 {
			return nil, usecase.ErrJobNotFound
		}
		return &entity.Job{ID: id, Title: *upd.Title}, nil
	}}
	r := newRouter(NewJobHandler(uc))

	w := do(r, http.MethodPut, "/jobs/3", `{"title":"Staff Engineer","skills":["Go","Kafka"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Skills)
	assert.Equal(t, []string{"Go", "Kafka"}, *got.Skills)
	assert.Nil(t, got.Company)
	assert.Contains(t, w.Body.String(), "Staff Engineer")

	w = do(r, http.MethodPut, "/jobs/404", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/jobs/3", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_DeleteJob(t *testing.T) {
	uc := &mockJobUsecase{DeleteJobFunc: func(_ context.Context, id uint) (*entity.Job, error) {
		if id == 2 {
			return nil, usecase.ErrJobNotFound
		}
		return &entity.Job{ID: id}, nil
	}}
	r := newRouter(NewJobHandler(uc))

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/jobs/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/jobs/2", "").Code)
}
