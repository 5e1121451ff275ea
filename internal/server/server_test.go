package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/internal/domain/service"
	"anubis/pkg/errcodes"
)

type stubStudentService struct {
	students []entity.Student
	loaded   []entity.Student
}

func (s *stubStudentService) Load(_ context.Context, students []entity.Student) ([]entity.Student, error) {
	s.loaded = students
	return students, nil
}

func (s *stubStudentService) List(_ context.Context) ([]entity.Student, error) {
	return s.students, nil
}

type stubAssignmentService struct {
	assignments map[string]entity.Assignment
}

func (s *stubAssignmentService) Add(_ context.Context, name string, releaseAt, dueAt time.Time) (entity.Assignment, error) {
	if _, ok := s.assignments[name]; ok {
		return entity.Assignment{}, domain.NewError(errcodes.AssignmentExists,
			fmt.Sprintf("assignment '%s' already exists", name))
	}
	assignment := entity.Assignment{Name: name, ReleaseAt: releaseAt, DueAt: dueAt}
	s.assignments[name] = assignment
	return assignment, nil
}

func (s *stubAssignmentService) List(_ context.Context) ([]entity.Assignment, error) {
	assignments := make([]entity.Assignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

type stubSubmissionService struct{}

func (s *stubSubmissionService) Submit(_ context.Context, assignment, netid, commitHash string) (entity.Submission, error) {
	return entity.Submission{
		ID:             "c0s6bqqj4000c0000000",
		AssignmentName: assignment,
		NetID:          netid,
		CommitHash:     commitHash,
		State:          entity.SubmissionPending,
		SubmittedAt:    time.Date(2021, 2, 10, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubSubmissionService) Get(_ context.Context, id string) (entity.Submission, error) {
	return entity.Submission{}, domain.NewError(errcodes.NotFound,
		fmt.Sprintf("submission with id '%s' not found", id))
}

type stubStatsService struct {
	stats map[string]entity.AssignmentStats
}

func (s *stubStatsService) ForAssignment(_ context.Context, assignment string) (entity.AssignmentStats, error) {
	stats, ok := s.stats[assignment]
	if !ok {
		return entity.AssignmentStats{}, domain.NewError(errcodes.NotFound,
			fmt.Sprintf("assignment '%s' not found", assignment))
	}
	return stats, nil
}

func (s *stubStatsService) ForStudent(_ context.Context, assignment, netid string) (entity.StudentAssignmentStat, error) {
	stats, ok := s.stats[assignment]
	if !ok {
		return entity.StudentAssignmentStat{}, domain.NewError(errcodes.NotFound,
			fmt.Sprintf("assignment '%s' not found", assignment))
	}
	for _, stat := range stats.Students {
		if stat.NetID == netid {
			return stat, nil
		}
	}
	return entity.StudentAssignmentStat{}, domain.NewError(errcodes.NotFound,
		fmt.Sprintf("student with netid '%s' not found", netid))
}

func newTestRouter(t *testing.T) (*chi.Mux, *stubStudentService, *stubAssignmentService, *stubStatsService) {
	t.Helper()

	studentSvc := &stubStudentService{}
	assignmentSvc := &stubAssignmentService{assignments: make(map[string]entity.Assignment)}
	statsSvc := &stubStatsService{stats: make(map[string]entity.AssignmentStats)}

	router := chi.NewRouter()
	NewServer(studentSvc, assignmentSvc, &stubSubmissionService{}, statsSvc).RegisterRoutes(router)

	return router, studentSvc, assignmentSvc, statsSvc
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAssignmentAdd(t *testing.T) {
	t.Run("creates assignment", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/assignment/add",
			`{"name":"os3224-assignment-1","release":"2021-02-01 00:00:00","due":"2021-02-14 23:59:59"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Nil(t, env.Error)
		assert.Contains(t, rec.Body.String(), `"2021-02-01 00:00:00"`)
	})

	t.Run("rejects malformed timestamp", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/assignment/add",
			`{"name":"os3224-assignment-1","release":"02/01/2021","due":"2021-02-14 23:59:59"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, errcodes.InvalidArgument, env.Error.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/assignment/add", `{"name":"os3224-assignment-1"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		router, _, assignmentSvc, _ := newTestRouter(t)
		assignmentSvc.assignments["os3224-assignment-2"] = entity.Assignment{Name: "os3224-assignment-2"}

		rec := doRequest(router, http.MethodPost, "/api/assignment/add",
			`{"name":"os3224-assignment-2","release":"2021-02-01 00:00:00","due":"2021-02-14 23:59:59"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, errcodes.AssignmentExists, env.Error.Code)
	})
}

func TestStudentLoad(t *testing.T) {
	t.Run("loads roster", func(t *testing.T) {
		router, studentSvc, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/student/load",
			`[{"netid":"jmc1283","name":"John"},{"netid":"abc123","name":"Alice","github_username":"alice"}]`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, studentSvc.loaded, 2)
		assert.Equal(t, "alice", studentSvc.loaded[1].GithubUsername)
	})

	t.Run("rejects record without netid", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/student/load", `[{"name":"John"}]`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-array body", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/student/load", `{"netid":"jmc1283"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStats(t *testing.T) {
	t.Run("unknown assignment is 404", func(t *testing.T) {
		router, _, _, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodGet, "/api/stats/os3224-assignment-9", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
	})

	t.Run("per student stat", func(t *testing.T) {
		router, _, _, statsSvc := newTestRouter(t)
		statsSvc.stats["os3224-assignment-2"] = entity.AssignmentStats{
			AssignmentName: "os3224-assignment-2",
			Students: []entity.StudentAssignmentStat{
				{NetID: "jmc1283", AssignmentName: "os3224-assignment-2", TotalSubmissions: 3},
			},
		}

		rec := doRequest(router, http.MethodGet, "/api/stats/os3224-assignment-2/jmc1283", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_submissions":3`)
	})
}

func TestHealthz(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

var _ StatsService = (*service.StatsService)(nil)
var _ StudentService = (*service.StudentService)(nil)
var _ AssignmentService = (*service.AssignmentService)(nil)
var _ SubmissionService = (*service.SubmissionService)(nil)
