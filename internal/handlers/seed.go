package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/constants"
	"github.com/barnhand/stable-api/internal/database"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/utils"
)

// SeedHandler wipes and repopulates the staff roster. It is destructive and
// only reachable with the configured seed token.
type SeedHandler struct {
	seedToken string
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedToken string) *SeedHandler {
	return &SeedHandler{seedToken: seedToken}
}

// Seed replaces all employees and horses with a default roster. An empty
// configured token disables the endpoint entirely.
func (h *SeedHandler) Seed(c *gin.Context) {
	provided := c.GetHeader(constants.SeedTokenHeader)
	if h.seedToken == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.seedToken)) != 1 {
		apierrors.Forbidden(c, "Seed endpoint is not available")
		return
	}

	db := database.GetDB()

	// Destructive: clear domain tables before reseeding.
	for _, model := range []interface{}{
		&models.Approval{}, &models.Task{}, &models.Attendance{},
		&models.Fine{}, &models.Inspection{}, &models.Meeting{},
		&models.InventoryItem{}, &models.Horse{}, &models.Employee{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			apierrors.InternalError(c, "Failed to clear tables")
			return
		}
	}

	passwordHash, err := utils.HashPassword("changeme-" + time.Now().Format("20060102"))
	if err != nil {
		apierrors.InternalError(c, "Failed to hash seed password")
		return
	}

	registry := authz.NewRegistry()
	roster := []struct {
		email       string
		name        string
		designation string
	}{
		{"admin@stable.local", "Ada Whitfield", authz.RoleAdmin},
		{"gm@stable.local", "Marcus Vale", authz.RoleGeneralManager},
		{"stablemanager@stable.local", "Ines Kowalczyk", authz.RoleStableManager},
		{"headgroom@stable.local", "Tomas Ridder", authz.RoleHeadGroom},
		{"vet@stable.local", "Priya Anand", authz.RoleVeterinarian},
		{"trainer@stable.local", "Lena Brandt", authz.RoleTrainer},
		{"groom@stable.local", "Sam Okafor", authz.RoleGroom},
		{"feed@stable.local", "Rosa Delgado", authz.RoleFeedStaff},
		{"maintenance@stable.local", "Jon Pike", authz.RoleMaintenanceStaff},
	}

	var supervisorID *uint64
	created := 0
	for _, entry := range roster {
		department := ""
		for _, dept := range []string{
			authz.DeptManagement, authz.DeptStable, authz.DeptMedical,
			authz.DeptTraining, authz.DeptFeed, authz.DeptMaintenance,
		} {
			for _, role := range registry.DepartmentRoles(dept) {
				if role == entry.designation {
					department = dept
				}
			}
		}

		employee := models.Employee{
			Email:            entry.email,
			PasswordHash:     passwordHash,
			FullName:         entry.name,
			Designation:      entry.designation,
			Department:       department,
			SupervisorID:     supervisorID,
			EmploymentStatus: models.EmploymentActive,
			IsApproved:       true,
		}
		if err := db.Create(&employee).Error; err != nil {
			apierrors.InternalError(c, "Failed to seed employees")
			return
		}
		// Everyone below the admin reports up the roster chain.
		if entry.designation == authz.RoleAdmin || entry.designation == authz.RoleStableManager {
			id := employee.ID
			supervisorID = &id
		}
		created++
	}

	horses := []models.Horse{
		{Name: "Aster", Breed: "Hanoverian", Age: 7, Stall: "A1", HealthStatus: "Healthy"},
		{Name: "Briar", Breed: "Connemara", Age: 5, Stall: "A2", HealthStatus: "Healthy"},
		{Name: "Comet", Breed: "Thoroughbred", Age: 9, Stall: "B1", HealthStatus: "Recovering"},
	}
	if err := db.Create(&horses).Error; err != nil {
		apierrors.InternalError(c, "Failed to seed horses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Seed completed",
		"employees": created,
		"horses":    len(horses),
	})
}
