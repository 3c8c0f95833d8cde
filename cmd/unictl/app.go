package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/internal/service"
	"github.com/campus-labs/uni-enroll-api/internal/store"
	"github.com/campus-labs/uni-enroll-api/pkg/config"
	"github.com/campus-labs/uni-enroll-api/pkg/database"
	"github.com/campus-labs/uni-enroll-api/pkg/storage"
)

const version = "1.0.0"

// app bundles the services wired against the configured store.
type app struct {
	Students    *service.StudentService
	Subjects    *service.SubjectService
	Enrollments *service.EnrollmentService
	Admin       *service.AdminService
	Reports     *service.ReportService
	Auth        *service.AuthService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// The CLI logs only its own output; service logging stays quiet.
	logr := zap.NewNop()

	var st store.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		pg := store.NewPostgresStore(db)
		if err := pg.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		st = pg
	default:
		st = store.NewJSONFileStore(cfg.Storage.FilePath, logr)
	}

	files, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		return nil, fmt.Errorf("init export storage: %w", err)
	}

	validate := service.NewValidator()
	roster := service.NewRoster(context.Background(), st, logr)
	subjects := service.NewSubjectService(nil, validate, logr)
	admin := service.NewAdminService(roster, logr)
	cache := service.NewCacheService(nil, service.NewMetricsService(), 0, logr, false)

	return &app{
		Students:    service.NewStudentService(roster, nil, validate, logr),
		Subjects:    subjects,
		Enrollments: service.NewEnrollmentService(roster, subjects, nil, validate, logr),
		Admin:       admin,
		Reports:     service.NewReportService(admin, files, cache, 0, logr),
		Auth: service.NewAuthService(roster, cfg.Admins, service.NewSessionManager(), validate, logr, service.AuthConfig{
			TokenSecret: cfg.JWT.Secret,
			TokenExpiry: cfg.JWT.Expiration,
			Issuer:      "uni-enroll-api",
		}),
	}, nil
}

// Login authenticates either a student by email or an admin by ID.
func (a *app) Login(ctx context.Context, email, adminID, password string) (*models.Session, error) {
	switch {
	case adminID != "":
		return a.Auth.LoginAdmin(ctx, models.AdminLoginRequest{AdminID: adminID, Password: password})
	case email != "":
		return a.Auth.LoginStudent(ctx, models.StudentLoginRequest{Email: email, Password: password})
	default:
		return nil, fmt.Errorf("either --email or --admin-id is required")
	}
}

// Enroll enrolls the student in the named subject, or a random eligible one.
func (a *app) Enroll(ctx context.Context, studentID, subjectID string, random bool) (*models.EnrollmentDetail, error) {
	if random {
		return a.Enrollments.EnrollRandom(ctx, studentID)
	}
	return a.Enrollments.Enroll(ctx, studentID, models.EnrollRequest{SubjectID: subjectID})
}

func registerRequest(name, email, password string) models.RegisterRequest {
	return models.RegisterRequest{Name: name, Email: email, Password: password}
}
