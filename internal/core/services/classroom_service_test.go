package services_test

import (
	"context"
	"testing"

	"github.com/bloxedu/blox_backend/internal/apperrors"
	"github.com/bloxedu/blox_backend/internal/core/domain"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/core/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClassroomServiceTestSuite struct {
	suite.Suite
	mockClassroomRepo  *MockClassroomRepository
	mockWalletRepo     *MockWalletRepository
	mockBlockchainRepo *MockBlockchainRepository
	service            portssvc.ClassroomSvcFacade
}

func (suite *ClassroomServiceTestSuite) SetupTest() {
	suite.mockClassroomRepo = new(MockClassroomRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockBlockchainRepo = new(MockBlockchainRepository)
	walletSvc := services.NewWalletService(suite.mockWalletRepo, suite.mockBlockchainRepo, suite.mockClassroomRepo)
	suite.service = services.NewClassroomService(suite.mockClassroomRepo, suite.mockWalletRepo, walletSvc)
}

func (suite *ClassroomServiceTestSuite) TestCreateClassroom_CreatesAutoWallet() {
	ctx := context.Background()
	creator := uuid.NewString()

	suite.mockWalletRepo.On("AddressExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()
	suite.mockClassroomRepo.On("SaveClassroom", ctx, mock.MatchedBy(func(c domain.Classroom) bool {
		return c.Name == "Period 3" && len(c.Admins) == 1 && c.Admins[0] == creator && c.AutoWalletID != ""
	})).Return(nil).Once()
	suite.mockWalletRepo.On("UpdateWalletClassroom", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), creator, mock.AnythingOfType("time.Time")).Return(nil).Once()

	classroom, err := suite.service.CreateClassroom(ctx, dto.CreateClassroomRequest{Name: "Period 3"}, creator)

	suite.Require().NoError(err)
	suite.Require().NotNil(classroom)
	suite.NotEmpty(classroom.AutoWalletID)
	suite.mockClassroomRepo.AssertExpectations(suite.T())
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *ClassroomServiceTestSuite) TestGenerateJoinCode_RequiresAdmin() {
	ctx := context.Background()
	classroomID := uuid.NewString()

	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroomID).Return(&domain.Classroom{
		ClassroomID: classroomID,
		Admins:      []string{uuid.NewString()},
	}, nil).Once()

	code, err := suite.service.GenerateJoinCode(ctx, classroomID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Empty(code)
}

func (suite *ClassroomServiceTestSuite) TestGenerateJoinCode_CollisionChecked() {
	ctx := context.Background()
	admin := uuid.NewString()
	classroomID := uuid.NewString()

	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroomID).Return(&domain.Classroom{
		ClassroomID: classroomID,
		Admins:      []string{admin},
	}, nil).Once()
	// First candidate collides, second is free.
	suite.mockClassroomRepo.On("FindClassroomByCode", ctx, mock.AnythingOfType("string")).Return(&domain.Classroom{}, nil).Once()
	suite.mockClassroomRepo.On("FindClassroomByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClassroomRepo.On("AddJoinCode", ctx, classroomID, mock.AnythingOfType("string")).Return(nil).Once()

	code, err := suite.service.GenerateJoinCode(ctx, classroomID, admin)

	suite.Require().NoError(err)
	suite.Len(code, 12)
	suite.mockClassroomRepo.AssertExpectations(suite.T())
}

func (suite *ClassroomServiceTestSuite) TestJoinByCode_EnrollsAndSharesAutoWallet() {
	ctx := context.Background()
	student := uuid.NewString()
	autoWalletID := uuid.NewString()
	classroom := &domain.Classroom{
		ClassroomID:  uuid.NewString(),
		Admins:       []string{uuid.NewString()},
		Students:     []string{},
		AutoWalletID: autoWalletID,
	}

	suite.mockClassroomRepo.On("FindClassroomByCode", ctx, "ABCDEF123456").Return(classroom, nil).Once()
	suite.mockClassroomRepo.On("AddStudent", ctx, classroom.ClassroomID, student).Return(nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, autoWalletID).Return(&domain.Wallet{
		WalletID: autoWalletID,
	}, nil).Once()
	suite.mockWalletRepo.On("AddWalletMember", ctx, autoWalletID, student).Return(nil).Once()

	result, err := suite.service.JoinByCode(ctx, "abcdef123456", student)

	suite.Require().NoError(err)
	suite.True(result.IsStudent(student))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *ClassroomServiceTestSuite) TestJoinByCode_AlreadyEnrolledIsNoOp() {
	ctx := context.Background()
	student := uuid.NewString()
	classroom := &domain.Classroom{
		ClassroomID: uuid.NewString(),
		Students:    []string{student},
	}

	suite.mockClassroomRepo.On("FindClassroomByCode", ctx, "CODE00000000").Return(classroom, nil).Once()

	result, err := suite.service.JoinByCode(ctx, "CODE00000000", student)

	suite.Require().NoError(err)
	suite.Equal(classroom, result)
	suite.mockClassroomRepo.AssertNotCalled(suite.T(), "AddStudent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClassroomServiceTestSuite) TestRemoveStudent_RevokesAutoWallet() {
	ctx := context.Background()
	admin := uuid.NewString()
	student := uuid.NewString()
	autoWalletID := uuid.NewString()
	classroom := &domain.Classroom{
		ClassroomID:  uuid.NewString(),
		Admins:       []string{admin},
		Students:     []string{student},
		AutoWalletID: autoWalletID,
	}

	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroom.ClassroomID).Return(classroom, nil).Once()
	suite.mockClassroomRepo.On("RemoveStudent", ctx, classroom.ClassroomID, student).Return(nil).Once()
	suite.mockWalletRepo.On("RemoveWalletMember", ctx, autoWalletID, student).Return(nil).Once()

	err := suite.service.RemoveStudent(ctx, classroom.ClassroomID, student, admin)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *ClassroomServiceTestSuite) TestPromoteAdmin_GrantsAutoWalletAdmin() {
	ctx := context.Background()
	admin := uuid.NewString()
	student := uuid.NewString()
	autoWalletID := uuid.NewString()
	classroom := &domain.Classroom{
		ClassroomID:  uuid.NewString(),
		Admins:       []string{admin},
		Students:     []string{student},
		AutoWalletID: autoWalletID,
	}

	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroom.ClassroomID).Return(classroom, nil).Once()
	suite.mockClassroomRepo.On("AddClassroomAdmin", ctx, classroom.ClassroomID, student).Return(nil).Once()
	suite.mockWalletRepo.On("AddWalletAdmin", ctx, autoWalletID, student).Return(nil).Once()

	err := suite.service.PromoteAdmin(ctx, classroom.ClassroomID, student, admin)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *ClassroomServiceTestSuite) TestDemoteAdmin_LastAdminRejected() {
	ctx := context.Background()
	admin := uuid.NewString()
	classroom := &domain.Classroom{
		ClassroomID: uuid.NewString(),
		Admins:      []string{admin},
	}

	suite.mockClassroomRepo.On("FindClassroomByID", ctx, classroom.ClassroomID).Return(classroom, nil).Once()

	err := suite.service.DemoteAdmin(ctx, classroom.ClassroomID, admin, admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClassroomRepo.AssertNotCalled(suite.T(), "RemoveClassroomAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassroomServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClassroomServiceTestSuite))
}
