package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/internal/utils"
	"github.com/google/uuid"
)

// joinCodeBytes gives 6-byte codes, 12 hex characters.
const joinCodeBytes = 6

// maxJoinCodeAttempts bounds code generation retries on collision.
const maxJoinCodeAttempts = 20

type classroomService struct {
	classroomRepo portsrepo.ClassroomRepositoryFacade
	walletRepo    portsrepo.WalletRepositoryFacade
	walletSvc     portssvc.WalletSvcFacade
}

// NewClassroomService creates a new classroom service instance.
func NewClassroomService(classroomRepo portsrepo.ClassroomRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, walletSvc portssvc.WalletSvcFacade) portssvc.ClassroomSvcFacade {
	return &classroomService{
		classroomRepo: classroomRepo,
		walletRepo:    walletRepo,
		walletSvc:     walletSvc,
	}
}

// CreateClassroom creates a classroom together with its auto-wallet. The
// creator administers both.
func (s *classroomService) CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest, creatorUserID string) (*domain.Classroom, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	autoWallet, err := s.walletSvc.CreateWallet(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	classroom := domain.Classroom{
		ClassroomID:  uuid.NewString(),
		Name:         req.Name,
		JoinCodes:    []string{},
		Admins:       []string{creatorUserID},
		Students:     []string{},
		AutoWalletID: autoWallet.WalletID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.classroomRepo.SaveClassroom(ctx, classroom); err != nil {
		logger.Error("Failed to save classroom", "error", err)
		return nil, err
	}

	if err := s.walletRepo.UpdateWalletClassroom(ctx, autoWallet.WalletID, classroom.ClassroomID, creatorUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Classroom created", "classroomID", classroom.ClassroomID, "autoWalletID", autoWallet.WalletID)
	return &classroom, nil
}

// GetClassroomByID returns the classroom when the requesting user belongs to
// it as admin or student.
func (s *classroomService) GetClassroomByID(ctx context.Context, classroomID string, requestingUserID string) (*domain.Classroom, error) {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if !classroom.IsAdmin(requestingUserID) && !classroom.IsStudent(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s does not belong to classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	return classroom, nil
}

func (s *classroomService) ListUserClassrooms(ctx context.Context, userID string) ([]domain.Classroom, error) {
	return s.classroomRepo.FindClassroomsByUser(ctx, userID)
}

// GenerateJoinCode mints a collision-checked code students can redeem.
func (s *classroomService) GenerateJoinCode(ctx context.Context, classroomID string, requestingUserID string) (string, error) {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return "", err
	}
	if !classroom.IsAdmin(requestingUserID) {
		return "", fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}

	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := utils.GenerateSecureRandomString(joinCodeBytes)
		if err != nil {
			return "", apperrors.NewAppError(500, "failed to generate join code", err)
		}
		code = strings.ToUpper(code)

		_, err = s.classroomRepo.FindClassroomByCode(ctx, code)
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := s.classroomRepo.AddJoinCode(ctx, classroomID, code); err != nil {
				return "", err
			}
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.NewAppError(500, "could not generate a unique join code", apperrors.ErrInternal)
}

// JoinByCode enrolls the user as a student and adds them to the classroom's
// auto-wallet as a member. Joining twice is a no-op.
func (s *classroomService) JoinByCode(ctx context.Context, code string, userID string) (*domain.Classroom, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	classroom, err := s.classroomRepo.FindClassroomByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	if classroom.IsAdmin(userID) || classroom.IsStudent(userID) {
		return classroom, nil
	}

	if err := s.classroomRepo.AddStudent(ctx, classroom.ClassroomID, userID); err != nil {
		return nil, err
	}
	classroom.Students = append(classroom.Students, userID)

	autoWallet, err := s.walletRepo.FindWalletByID(ctx, classroom.AutoWalletID)
	if err != nil {
		return nil, err
	}
	if !autoWallet.IsMember(userID) && !autoWallet.IsAdmin(userID) {
		if err := s.walletRepo.AddWalletMember(ctx, autoWallet.WalletID, userID); err != nil {
			return nil, err
		}
	}

	logger.Info("Student joined classroom", "classroomID", classroom.ClassroomID, "userID", userID)
	return classroom, nil
}

func (s *classroomService) RenameClassroom(ctx context.Context, classroomID string, req dto.UpdateClassroomRequest, requestingUserID string) error {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !classroom.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	return s.classroomRepo.UpdateClassroomName(ctx, classroomID, req.Name, requestingUserID, time.Now())
}

// RemoveStudent unenrolls a student and revokes their auto-wallet membership.
func (s *classroomService) RemoveStudent(ctx context.Context, classroomID string, userID string, requestingUserID string) error {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !classroom.IsAdmin(requestingUserID) && userID != requestingUserID {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	if !classroom.IsStudent(userID) {
		return fmt.Errorf("%w: user %s is not a student of classroom %s", apperrors.ErrNotFound, userID, classroomID)
	}
	if err := s.classroomRepo.RemoveStudent(ctx, classroomID, userID); err != nil {
		return err
	}
	return s.walletRepo.RemoveWalletMember(ctx, classroom.AutoWalletID, userID)
}

// PromoteAdmin makes a user an admin of the classroom and grants them admin
// rights on the auto-wallet.
func (s *classroomService) PromoteAdmin(ctx context.Context, classroomID string, userID string, requestingUserID string) error {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !classroom.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	if classroom.IsAdmin(userID) {
		return fmt.Errorf("%w: user %s is already an admin of classroom %s", apperrors.ErrDuplicate, userID, classroomID)
	}
	if err := s.classroomRepo.AddClassroomAdmin(ctx, classroomID, userID); err != nil {
		return err
	}
	return s.walletRepo.AddWalletAdmin(ctx, classroom.AutoWalletID, userID)
}

// DemoteAdmin strips admin from a user on both the classroom and its
// auto-wallet. The last admin cannot be demoted.
func (s *classroomService) DemoteAdmin(ctx context.Context, classroomID string, userID string, requestingUserID string) error {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !classroom.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	if !classroom.IsAdmin(userID) {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrNotFound, userID, classroomID)
	}
	if len(classroom.Admins) == 1 {
		return fmt.Errorf("%w: classroom %s needs at least one admin", apperrors.ErrValidation, classroomID)
	}
	if err := s.classroomRepo.RemoveClassroomAdmin(ctx, classroomID, userID); err != nil {
		return err
	}
	return s.walletRepo.RemoveWalletAdmin(ctx, classroom.AutoWalletID, userID)
}

func (s *classroomService) DeleteClassroom(ctx context.Context, classroomID string, requestingUserID string) error {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !classroom.IsAdmin(requestingUserID) {
		return fmt.Errorf("%w: user %s is not an admin of classroom %s", apperrors.ErrForbidden, requestingUserID, classroomID)
	}
	return s.classroomRepo.DeleteClassroom(ctx, classroomID)
}
