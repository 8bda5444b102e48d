package repositories

import (
	"context"
	"time"

	"github.com/bloxedu/blox_backend/internal/core/domain"
)

// ClassroomRepositoryFacade defines persistence operations for classrooms and
// their join codes.
type ClassroomRepositoryFacade interface {
	SaveClassroom(ctx context.Context, classroom domain.Classroom) error
	FindClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error)
	FindClassroomByCode(ctx context.Context, code string) (*domain.Classroom, error)
	FindClassroomsByUser(ctx context.Context, userID string) ([]domain.Classroom, error)
	AddJoinCode(ctx context.Context, classroomID string, code string) error
	UpdateClassroomName(ctx context.Context, classroomID string, name string, updatedBy string, updatedAt time.Time) error
	AddStudent(ctx context.Context, classroomID string, userID string) error
	RemoveStudent(ctx context.Context, classroomID string, userID string) error
	AddClassroomAdmin(ctx context.Context, classroomID string, userID string) error
	RemoveClassroomAdmin(ctx context.Context, classroomID string, userID string) error
	DeleteClassroom(ctx context.Context, classroomID string) error
}
