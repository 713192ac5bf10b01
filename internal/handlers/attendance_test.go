package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/constants"
	"github.com/barnhand/stable-api/internal/database"
	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AttendanceHandlerTestSuite defines the test suite for AttendanceHandler
type AttendanceHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	handler  *AttendanceHandler
	emailSeq int
}

// SetupTest runs before each test
func (suite *AttendanceHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Employee{}, &models.Attendance{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.handler = NewAttendanceHandler(authz.NewChecker(authz.NewRegistry()))
	suite.emailSeq = 0

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AttendanceHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AttendanceHandlerTestSuite) createEmployee(designation string) *models.Employee {
	suite.emailSeq++
	employee := &models.Employee{
		Email:            fmt.Sprintf("staff%d@stable.local", suite.emailSeq),
		PasswordHash:     "hashedpassword",
		FullName:         "Test Employee",
		Designation:      designation,
		EmploymentStatus: models.EmploymentActive,
		IsApproved:       true,
	}
	suite.db.Create(employee)
	return employee
}

func (suite *AttendanceHandlerTestSuite) createAuthContext(method, url string, actor *models.Employee) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, url, nil)
	c.Set(constants.ContextKeyEmployeeID, actor.ID)
	c.Set(constants.ContextKeyDesignation, actor.Designation)
	return c, w
}

func (suite *AttendanceHandlerTestSuite) TestCheckIn_Success() {
	groom := suite.createEmployee(authz.RoleGroom)

	c, w := suite.createAuthContext("POST", "/api/attendance/check-in", groom)
	suite.handler.CheckIn(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var record models.Attendance
	suite.Require().NoError(suite.db.Where("employee_id = ?", groom.ID).First(&record).Error)
	assert.Equal(suite.T(), time.Now().Format("2006-01-02"), record.Day)
	assert.Nil(suite.T(), record.CheckOutAt)
}

func (suite *AttendanceHandlerTestSuite) TestCheckIn_DuplicateSameDay() {
	groom := suite.createEmployee(authz.RoleGroom)

	c, w := suite.createAuthContext("POST", "/api/attendance/check-in", groom)
	suite.handler.CheckIn(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	// One record per employee per day.
	c, w = suite.createAuthContext("POST", "/api/attendance/check-in", groom)
	suite.handler.CheckIn(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var count int64
	suite.db.Model(&models.Attendance{}).Where("employee_id = ?", groom.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *AttendanceHandlerTestSuite) TestCheckOut_Success() {
	groom := suite.createEmployee(authz.RoleGroom)

	c, w := suite.createAuthContext("POST", "/api/attendance/check-in", groom)
	suite.handler.CheckIn(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("PATCH", "/api/attendance/check-out", groom)
	suite.handler.CheckOut(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var record models.Attendance
	suite.Require().NoError(suite.db.Where("employee_id = ?", groom.ID).First(&record).Error)
	assert.NotNil(suite.T(), record.CheckOutAt)
}

func (suite *AttendanceHandlerTestSuite) TestCheckOut_WithoutCheckIn() {
	groom := suite.createEmployee(authz.RoleGroom)

	c, w := suite.createAuthContext("PATCH", "/api/attendance/check-out", groom)
	suite.handler.CheckOut(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *AttendanceHandlerTestSuite) TestCheckOut_Twice() {
	groom := suite.createEmployee(authz.RoleGroom)

	c, _ := suite.createAuthContext("POST", "/api/attendance/check-in", groom)
	suite.handler.CheckIn(c)
	c, _ = suite.createAuthContext("PATCH", "/api/attendance/check-out", groom)
	suite.handler.CheckOut(c)

	c, w := suite.createAuthContext("PATCH", "/api/attendance/check-out", groom)
	suite.handler.CheckOut(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *AttendanceHandlerTestSuite) TestListAttendance_RegularRoleSeesOwnOnly() {
	groom := suite.createEmployee(authz.RoleGroom)
	other := suite.createEmployee(authz.RoleGroom)

	day := time.Now().Format("2006-01-02")
	suite.db.Create(&models.Attendance{EmployeeID: groom.ID, Day: day, CheckInAt: time.Now()})
	suite.db.Create(&models.Attendance{EmployeeID: other.ID, Day: day, CheckInAt: time.Now()})

	c, w := suite.createAuthContext("GET", "/api/attendance", groom)
	suite.handler.ListAttendance(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	records := response["attendance"].([]interface{})
	suite.Require().Len(records, 1)
	first := records[0].(map[string]interface{})
	assert.Equal(suite.T(), float64(groom.ID), first["employee_id"])
}

func (suite *AttendanceHandlerTestSuite) TestListAttendance_ManagerSeesAll() {
	manager := suite.createEmployee(authz.RoleStableManager)
	groom := suite.createEmployee(authz.RoleGroom)
	other := suite.createEmployee(authz.RoleGroom)

	day := time.Now().Format("2006-01-02")
	suite.db.Create(&models.Attendance{EmployeeID: groom.ID, Day: day, CheckInAt: time.Now()})
	suite.db.Create(&models.Attendance{EmployeeID: other.ID, Day: day, CheckInAt: time.Now()})

	c, w := suite.createAuthContext("GET", "/api/attendance", manager)
	suite.handler.ListAttendance(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	records := response["attendance"].([]interface{})
	assert.Len(suite.T(), records, 2)
}

// TestSuite runs the test suite
func TestAttendanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceHandlerTestSuite))
}
