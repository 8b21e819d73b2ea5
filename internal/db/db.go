package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/backoffice/internal/models"
)

// ConnectAndMigrate opens the database selected by the DSN (sqlite or
// postgres), creates the schema for all entity kinds, and optionally seeds a
// demo dataset when DB_SEED=1.
func ConnectAndMigrate(rawDSN string) (*gorm.DB, error) {
	dsn := NormalizeDSN(rawDSN)
	if dsn == "" {
		return nil, errors.New("database DSN is empty, check the environment configuration")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if IsSQLite(dsn) {
		conn, err = gorm.Open(sqlite.Open(SQLitePath(dsn)), cfg)
	} else {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Warn().Err(err).Msg("retrying DB connection")
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info().Str("dsn", maskDSN(dsn)).Msg("database connected")

	if err := AutoMigrate(conn); err != nil {
		return nil, err
	}

	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(conn)
	}
	return conn, nil
}

// AutoMigrate creates or updates the tables for every entity kind and checks
// the core tables actually exist afterwards.
func AutoMigrate(conn *gorm.DB) error {
	entities := []any{
		&models.Company{}, &models.Project{}, &models.ContactPerson{},
		&models.Quote{}, &models.QuoteItem{}, &models.Receipt{},
		&models.Employee{}, &models.Timesheet{},
	}
	for _, m := range entities {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"companys", "projects", "quotes"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func maskDSN(dsn string) string {
	if strings.Contains(dsn, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		return re.ReplaceAllString(dsn, `${1}***`)
	}
	return dsn
}

// seed inserts one small demo chain (company, project, quote, item, receipt,
// employee, timesheet). Skipped when any company already exists.
func seed(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Company{}).Count(&count)
	if count > 0 {
		return
	}
	now := time.Now()
	company := models.Company{ID: uuid.NewString(), Name: "Acme Consulting", TaxID: ptr("TW-24538261"), Email: ptr("office@acme.test")}
	conn.Create(&company)
	project := models.Project{ID: uuid.NewString(), Name: "Website relaunch", Status: "active", StartDate: now, CompanyID: &company.ID}
	conn.Create(&project)
	quote := models.Quote{ID: uuid.NewString(), QuoteNumber: "Q-1001", Status: "draft", TotalAmount: 1500.5, CreatedAt: now, ProjectID: project.ID}
	conn.Create(&quote)
	item := models.QuoteItem{ID: uuid.NewString(), Name: "Design sprint", Quantity: 3, UnitPrice: 500, QuoteID: quote.ID}
	conn.Create(&item)
	conn.Create(&models.Receipt{ID: uuid.NewString(), ReceiptNumber: "R-0001", Amount: 500, PaymentDate: now, QuoteID: quote.ID})
	employee := models.Employee{ID: uuid.NewString(), Name: "Mei Lin", Role: ptr("staff"), HourlyRate: 85, IsActive: true}
	conn.Create(&employee)
	conn.Create(&models.Timesheet{ID: uuid.NewString(), HoursLogged: 6, DateLogged: now, EmployeeID: employee.ID, QuoteItemID: &item.ID})
	log.Info().Msg("seeded demo dataset")
}

func ptr(s string) *string { return &s }
