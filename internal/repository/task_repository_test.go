package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// TestUpdateStatusIf_SingleConditionalUpdate verifies the transition is one
// UPDATE keyed on the expected status, not a read-then-write.
func TestUpdateStatusIf_SingleConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WithArgs("In Progress", sqlmock.AnyArg(), 7, "Pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatusIf(7, models.TaskStatusPending, models.TaskStatusInProgress, nil)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateStatusIf_PreconditionFailed verifies that a zero-row update is
// reported as a conflict, never swallowed.
func TestUpdateStatusIf_PreconditionFailed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WithArgs("Approved", sqlmock.AnyArg(), 7, "Pending Review").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatusIf(7, models.TaskStatusPendingReview, models.TaskStatusApproved, nil)
	assert.ErrorIs(t, err, ErrStatusConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}
