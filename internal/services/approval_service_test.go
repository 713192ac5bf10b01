package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ApprovalServiceTestSuite defines the test suite for ApprovalService
type ApprovalServiceTestSuite struct {
	suite.Suite
	db              *gorm.DB
	approvalService *ApprovalService
	emailSeq        int
}

// SetupTest runs before each test
func (suite *ApprovalServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Employee{},
		&models.Horse{},
		&models.Task{},
		&models.Approval{},
	)
	suite.Require().NoError(err)

	checker := authz.NewChecker(authz.NewRegistry())
	suite.approvalService = NewApprovalService(
		repository.NewTaskRepository(suite.db),
		repository.NewApprovalRepository(suite.db),
		checker,
		NewLogNotifier(),
		48*time.Hour,
		24*time.Hour,
	)
	suite.emailSeq = 0
}

// TearDownTest runs after each test
func (suite *ApprovalServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ApprovalServiceTestSuite) createEmployee(designation string) *models.Employee {
	suite.emailSeq++
	employee := &models.Employee{
		Email:            fmt.Sprintf("approver%d@stable.local", suite.emailSeq),
		PasswordHash:     "hashedpassword",
		FullName:         "Test Employee",
		Designation:      designation,
		EmploymentStatus: models.EmploymentActive,
		IsApproved:       true,
	}
	suite.db.Create(employee)
	return employee
}

func (suite *ApprovalServiceTestSuite) createSubmittedTask(creator, assignee *models.Employee, approverLevel int, slaDue time.Time) *models.Task {
	horse := &models.Horse{Name: "Aster"}
	suite.db.Create(horse)

	task := &models.Task{
		Name:               "Muck out stall",
		Type:               models.TaskTypeDaily,
		Status:             models.TaskStatusPendingReview,
		Priority:           models.TaskPriorityMedium,
		HorseID:            horse.ID,
		AssignedEmployeeID: assignee.ID,
		CreatedByID:        creator.ID,
		ScheduledTime:      time.Now().Add(-time.Hour),
	}
	suite.db.Create(task)

	approval := &models.Approval{
		TaskID:        task.ID,
		ApproverLevel: approverLevel,
		Status:        models.ApprovalStatusPending,
		SLADueDate:    slaDue,
	}
	suite.db.Create(approval)

	return task
}

func (suite *ApprovalServiceTestSuite) TestApprove_Success() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))

	approved, err := suite.approvalService.Approve(context.Background(), manager, task.ID, "looks good")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusApproved, approved.Status)

	var approval models.Approval
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).First(&approval).Error)
	assert.Equal(suite.T(), models.ApprovalStatusApproved, approval.Status)
	suite.Require().NotNil(approval.ApproverID)
	assert.Equal(suite.T(), manager.ID, *approval.ApproverID)
	assert.NotNil(suite.T(), approval.ApprovedAt)
	assert.Equal(suite.T(), "looks good", approval.Notes)
}

func (suite *ApprovalServiceTestSuite) TestReject_RequiresNotes() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))

	_, err := suite.approvalService.Reject(context.Background(), manager, task.ID, "   ")

	assert.ErrorIs(suite.T(), err, ErrRejectionNotes)

	// The task must not have moved.
	var reloaded models.Task
	suite.db.First(&reloaded, task.ID)
	assert.Equal(suite.T(), models.TaskStatusPendingReview, reloaded.Status)
}

func (suite *ApprovalServiceTestSuite) TestReject_Success() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))

	rejected, err := suite.approvalService.Reject(context.Background(), manager, task.ID, "stall still dirty")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusRejected, rejected.Status)

	var approval models.Approval
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).First(&approval).Error)
	assert.Equal(suite.T(), models.ApprovalStatusRejected, approval.Status)
	assert.Equal(suite.T(), "stall still dirty", approval.Notes)
}

func (suite *ApprovalServiceTestSuite) TestApprove_NotApprover() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))

	_, err := suite.approvalService.Approve(context.Background(), groom, task.ID, "")

	assert.ErrorIs(suite.T(), err, ErrNotApprover)
}

func (suite *ApprovalServiceTestSuite) TestApprove_TaskNotInReview() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Update("status", models.TaskStatusInProgress)

	_, err := suite.approvalService.Approve(context.Background(), manager, task.ID, "")

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *ApprovalServiceTestSuite) TestApproveThenReject_OneWinner() {
	manager := suite.createEmployee(authz.RoleStableManager)
	admin := suite.createEmployee(authz.RoleAdmin)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(48*time.Hour))

	_, err := suite.approvalService.Approve(context.Background(), manager, task.ID, "")
	suite.Require().NoError(err)

	// The second decision loses the conditional update and must not
	// overwrite the first.
	_, err = suite.approvalService.Reject(context.Background(), admin, task.ID, "changed my mind")
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)

	var reloaded models.Task
	suite.db.First(&reloaded, task.ID)
	assert.Equal(suite.T(), models.TaskStatusApproved, reloaded.Status)
}

func (suite *ApprovalServiceTestSuite) TestSweep_EscalatesOverdueApproval() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 4, time.Now().Add(-time.Hour))

	suite.Require().NoError(suite.approvalService.Sweep(context.Background()))

	var approvals []models.Approval
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&approvals).Error)
	suite.Require().Len(approvals, 2)

	assert.Equal(suite.T(), models.ApprovalStatusNoResponse, approvals[0].Status)
	assert.NotNil(suite.T(), approvals[0].EscalatedAt)

	assert.Equal(suite.T(), models.ApprovalStatusPending, approvals[1].Status)
	assert.Equal(suite.T(), 5, approvals[1].ApproverLevel)
	assert.True(suite.T(), approvals[1].SLADueDate.After(time.Now()))

	// The task itself stays in review.
	var reloaded models.Task
	suite.db.First(&reloaded, task.ID)
	assert.Equal(suite.T(), models.TaskStatusPendingReview, reloaded.Status)
}

func (suite *ApprovalServiceTestSuite) TestSweep_ChainStopsAtTopLevel() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	task := suite.createSubmittedTask(manager, groom, 6, time.Now().Add(-time.Hour))

	suite.Require().NoError(suite.approvalService.Sweep(context.Background()))

	var approvals []models.Approval
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).Find(&approvals).Error)
	suite.Require().Len(approvals, 1)
	assert.Equal(suite.T(), models.ApprovalStatusNoResponse, approvals[0].Status)
}

func (suite *ApprovalServiceTestSuite) TestSweep_MarksStalePendingTasksMissed() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	horse := &models.Horse{Name: "Briar"}
	suite.db.Create(horse)

	stale := &models.Task{
		Name:               "Morning feed",
		Type:               models.TaskTypeDaily,
		Status:             models.TaskStatusPending,
		Priority:           models.TaskPriorityMedium,
		HorseID:            horse.ID,
		AssignedEmployeeID: groom.ID,
		CreatedByID:        manager.ID,
		ScheduledTime:      time.Now().Add(-48 * time.Hour),
	}
	suite.db.Create(stale)

	fresh := &models.Task{
		Name:               "Evening feed",
		Type:               models.TaskTypeDaily,
		Status:             models.TaskStatusPending,
		Priority:           models.TaskPriorityMedium,
		HorseID:            horse.ID,
		AssignedEmployeeID: groom.ID,
		CreatedByID:        manager.ID,
		ScheduledTime:      time.Now().Add(-time.Hour),
	}
	suite.db.Create(fresh)

	suite.Require().NoError(suite.approvalService.Sweep(context.Background()))

	var reloaded models.Task
	suite.db.First(&reloaded, stale.ID)
	assert.Equal(suite.T(), models.TaskStatusMissed, reloaded.Status)

	// Inside the grace window, nothing happens.
	suite.db.First(&reloaded, fresh.ID)
	assert.Equal(suite.T(), models.TaskStatusPending, reloaded.Status)
}

func (suite *ApprovalServiceTestSuite) TestListApprovals_TaskNotFound() {
	_, err := suite.approvalService.ListApprovals(9999)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestSuite runs the test suite
func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
