package database

import (
	"fmt"
	"log"

	"budgetia/config"
	"budgetia/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database connection and prepares the schema.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("connexion à la base de données: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Income{},
	); err != nil {
		return err
	}

	if err := seedDemoData(); err != nil {
		return err
	}

	log.Println("base de données initialisée")
	return nil
}

// seedDemoData creates a demo account with its default categories on a
// fresh database so the app is usable immediately.
func seedDemoData() error {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := models.User{
		Email:         "demo@exemple.com",
		Password:      string(hashed),
		MonthlySalary: 2000,
	}
	if err := DB.Create(&demo).Error; err != nil {
		return err
	}

	var cats []models.Category
	for _, d := range models.SeedCategories() {
		cats = append(cats, models.Category{
			UserID:        demo.ID,
			Name:          d.Name,
			MonthlyBudget: d.Budget,
			Color:         d.Color,
		})
	}
	if len(cats) > 0 {
		if err := DB.Create(&cats).Error; err != nil {
			return err
		}
	}

	log.Printf("compte de démonstration créé: %s", demo.Email)
	return nil
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}
