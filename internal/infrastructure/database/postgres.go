package database

import (
	"fmt"
	"log"

	"github.com/zaylabs/dryclean-api/internal/config"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Access control
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Shop setup
		&entity.Branch{},
		&entity.Item{},
		&entity.Configuration{},
		&entity.Problem{},
		&entity.AppSetting{},
		&entity.Location{},

		// Counter
		&entity.Customer{},
		&entity.Booking{},
		&entity.BookingItem{},
		&entity.ReceiptSequence{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Permission names checked by the HTTP routes
const (
	PermViewDashboard       = "view-dashboard"
	PermManageRoles         = "manage-roles"
	PermManageUsers         = "manage-users"
	PermManagePermissions   = "manage-permissions"
	PermManageBranches      = "manage-branches"
	PermManageItems         = "manage-items"
	PermManageCustomers     = "manage-customers"
	PermManageConfiguration = "manage-configuration"
	PermManageProblems      = "manage-problems"
	PermManageSettings      = "manage-settings"
	PermManageLocations     = "manage-locations"
	PermAccessPOS           = "access-pos"
	PermUpdateBookings      = "update-bookings"
	PermViewReports         = "view-reports"
)

// DefaultPermissions is every permission the API knows about
var DefaultPermissions = []string{
	PermViewDashboard,
	PermManageRoles,
	PermManageUsers,
	PermManagePermissions,
	PermManageBranches,
	PermManageItems,
	PermManageCustomers,
	PermManageConfiguration,
	PermManageProblems,
	PermManageSettings,
	PermManageLocations,
	PermAccessPOS,
	PermUpdateBookings,
	PermViewReports,
}

// DefaultRoles maps each seeded role to its permissions; nil means all
var DefaultRoles = map[string][]string{
	entity.RoleSuperAdmin: nil,
	entity.RoleAdmin:      nil,
	"manager":             {PermAccessPOS, PermUpdateBookings, PermManageCustomers},
	"user":                {PermViewDashboard},
}

// SeedDefaultData seeds roles, permissions and the optional super admin
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	log.Println("Seeding default data...")

	for _, name := range DefaultPermissions {
		perm := entity.Permission{Name: name, GuardName: "web"}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
			log.Printf("Warning: failed to create permission %s: %v", name, err)
		}
	}

	var allPermissions []entity.Permission
	if err := db.Find(&allPermissions).Error; err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}

	for roleName, permNames := range DefaultRoles {
		var role entity.Role
		if err := db.Where("name = ?", roleName).First(&role).Error; err == nil {
			continue
		}
		role = entity.Role{
			Name:        roleName,
			GuardName:   "web",
			Permissions: pickPermissions(allPermissions, permNames),
		}
		if err := db.Create(&role).Error; err != nil {
			log.Printf("Warning: failed to create %s role: %v", roleName, err)
		}
	}

	if admin != nil && admin.Email != "" && admin.Password != "" {
		if err := seedAdmin(db, admin); err != nil {
			log.Printf("Warning: failed to create super admin user: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

func pickPermissions(all []entity.Permission, names []string) []entity.Permission {
	if names == nil {
		return all
	}
	picked := make([]entity.Permission, 0, len(names))
	for _, name := range names {
		for _, p := range all {
			if p.Name == name {
				picked = append(picked, p)
				break
			}
		}
	}
	return picked
}

func seedAdmin(db *gorm.DB, admin *config.AdminConfig) error {
	var existing entity.User
	if err := db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		log.Printf("Super admin user already exists: %s", admin.Email)
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	var saRole entity.Role
	if err := db.Where("name = ?", entity.RoleSuperAdmin).First(&saRole).Error; err != nil {
		return fmt.Errorf("load super-admin role: %w", err)
	}

	user := entity.User{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: hashedPassword,
		Roles:    []entity.Role{saRole},
	}

	if code := utils.NormalizeBranchCode(admin.BranchCode); code != "" {
		branch := entity.Branch{BranchName: code, BranchCode: code}
		if err := db.Where(entity.Branch{BranchCode: code}).FirstOrCreate(&branch).Error; err != nil {
			return fmt.Errorf("seed admin branch: %w", err)
		}
		user.BranchCode = &code
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Super admin user created: %s", admin.Email)
	return nil
}
