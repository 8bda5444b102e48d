package services

import (
	"context"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	"github.com/bloxedu/blox_backend/internal/dto"
)

// ClassroomSvcFacade manages classrooms, join codes and enrollment.
type ClassroomSvcFacade interface {
	// CreateClassroom creates a classroom and its auto-wallet; the creator
	// becomes admin of both.
	CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest, creatorUserID string) (*domain.Classroom, error)
	GetClassroomByID(ctx context.Context, classroomID string, requestingUserID string) (*domain.Classroom, error)
	ListUserClassrooms(ctx context.Context, userID string) ([]domain.Classroom, error)
	// GenerateJoinCode mints a collision-checked code students can redeem.
	GenerateJoinCode(ctx context.Context, classroomID string, requestingUserID string) (string, error)
	// JoinByCode enrolls the user as a student and adds them to the
	// classroom's auto-wallet.
	JoinByCode(ctx context.Context, code string, userID string) (*domain.Classroom, error)
	RenameClassroom(ctx context.Context, classroomID string, req dto.UpdateClassroomRequest, requestingUserID string) error
	RemoveStudent(ctx context.Context, classroomID string, userID string, requestingUserID string) error
	// PromoteAdmin makes a user an admin of the classroom and its auto-wallet.
	PromoteAdmin(ctx context.Context, classroomID string, userID string, requestingUserID string) error
	// DemoteAdmin strips admin from a user. The last admin cannot be demoted.
	DemoteAdmin(ctx context.Context, classroomID string, userID string, requestingUserID string) error
	DeleteClassroom(ctx context.Context, classroomID string, requestingUserID string) error
}
