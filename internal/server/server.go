package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

type StudentService interface {
	Load(ctx context.Context, students []entity.Student) ([]entity.Student, error)
	List(ctx context.Context) ([]entity.Student, error)
}

type AssignmentService interface {
	Add(ctx context.Context, name string, releaseAt, dueAt time.Time) (entity.Assignment, error)
	List(ctx context.Context) ([]entity.Assignment, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, assignment, netid, commitHash string) (entity.Submission, error)
	Get(ctx context.Context, id string) (entity.Submission, error)
}

type StatsService interface {
	ForAssignment(ctx context.Context, assignment string) (entity.AssignmentStats, error)
	ForStudent(ctx context.Context, assignment, netid string) (entity.StudentAssignmentStat, error)
}

type Server struct {
	studentService    StudentService
	assignmentService AssignmentService
	submissionService SubmissionService
	statsService      StatsService

	validate *validator.Validate
}

func NewServer(
	studentSvc StudentService,
	assignmentSvc AssignmentService,
	submissionSvc SubmissionService,
	statsSvc StatsService,
) *Server {
	return &Server{
		studentService:    studentSvc,
		assignmentService: assignmentSvc,
		submissionService: submissionSvc,
		statsService:      statsSvc,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Server) RegisterRoutes(router chi.Router) {
	router.Get("/healthz", s.Healthz)

	router.Route("/api", func(r chi.Router) {
		r.Post("/student/load", s.StudentLoad)
		r.Get("/student", s.StudentList)
		r.Post("/assignment/add", s.AssignmentAdd)
		r.Get("/assignment", s.AssignmentList)
		r.Get("/stats/{assignment}", s.AssignmentStats)
		r.Get("/stats/{assignment}/{netid}", s.StudentStats)
		r.Post("/submission", s.SubmissionAdd)
		r.Get("/submission/{id}", s.SubmissionGet)
	})
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) StudentLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var records []StudentRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument, "request body must be a JSON array of students"))
		return
	}

	for _, record := range records {
		if err := s.validate.Struct(record); err != nil {
			writeError(ctx, w, domain.NewError(errcodes.InvalidArgument,
				fmt.Sprintf("invalid student record '%s': %v", record.NetID, err)))
			return
		}
	}

	students := lo.Map(records, func(record StudentRecord, _ int) entity.Student {
		return newDomainStudent(record)
	})

	loaded, err := s.studentService.Load(ctx, students)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lo.Map(loaded, func(student entity.Student, _ int) Student {
		return newRESTStudent(student)
	}))
}

func (s *Server) StudentList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	students, err := s.studentService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lo.Map(students, func(student entity.Student, _ int) Student {
		return newRESTStudent(student)
	}))
}

func (s *Server) AssignmentAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request AssignmentAddRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument, "invalid request body"))
		return
	}
	if err := s.validate.Struct(request); err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument, fmt.Sprintf("invalid assignment request: %v", err)))
		return
	}

	releaseAt, err := time.Parse(entity.TimeLayout, request.Release)
	if err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument,
			fmt.Sprintf("release timestamp must be in '%s' format", entity.TimeLayout)))
		return
	}
	dueAt, err := time.Parse(entity.TimeLayout, request.Due)
	if err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument,
			fmt.Sprintf("due timestamp must be in '%s' format", entity.TimeLayout)))
		return
	}

	created, err := s.assignmentService.Add(ctx, request.Name, releaseAt, dueAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, newRESTAssignment(created))
}

func (s *Server) AssignmentList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assignments, err := s.assignmentService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lo.Map(assignments, func(assignment entity.Assignment, _ int) Assignment {
		return newRESTAssignment(assignment)
	}))
}

func (s *Server) AssignmentStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.statsService.ForAssignment(ctx, chi.URLParam(r, "assignment"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newRESTAssignmentStats(stats))
}

func (s *Server) StudentStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stat, err := s.statsService.ForStudent(ctx, chi.URLParam(r, "assignment"), chi.URLParam(r, "netid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newRESTStudentStat(stat))
}

func (s *Server) SubmissionAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request SubmissionAddRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument, "invalid request body"))
		return
	}
	if err := s.validate.Struct(request); err != nil {
		writeError(ctx, w, domain.NewError(errcodes.InvalidArgument, fmt.Sprintf("invalid submission request: %v", err)))
		return
	}

	created, err := s.submissionService.Submit(ctx, request.Assignment, request.NetID, request.CommitHash)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, newRESTSubmission(created))
}

func (s *Server) SubmissionGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	submission, err := s.submissionService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newRESTSubmission(submission))
}
