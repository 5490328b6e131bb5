package main

import (
	"log"

	"actor-portfolio/internal/config"
	"actor-portfolio/internal/database"
	"actor-portfolio/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Copies contact inquiries from the local SQLite file into the configured
// Postgres database. Rows whose uuid already exists are left alone.
func main() {
	cfg := config.LoadConfig()
	if cfg.DBDriver != "postgres" {
		log.Fatalf("DB_DRIVER must be postgres for migration, got %q", cfg.DBDriver)
	}

	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	database.InitGorm(cfg)

	log.Println("Migrating contact inquiries...")
	read, err := copyInquiries(sqliteDB, database.GormDB)
	if err != nil {
		log.Fatalf("Error migrating contact_inquiries: %v", err)
	}
	log.Printf("Read %d contact inquiries from SQLite", read)

	log.Println("DONE!")
}

// copyInquiries inserts every inquiry of src into dst in one transaction.
// Primary keys are left to dst so ids already used there cannot collide;
// uuid is the identity across databases.
func copyInquiries(src, dst *gorm.DB) (int, error) {
	var inquiries []models.ContactInquiry
	if err := src.Order("id asc").Find(&inquiries).Error; err != nil {
		return 0, err
	}
	if len(inquiries) == 0 {
		return 0, nil
	}
	for i := range inquiries {
		inquiries[i].ID = 0
	}

	err := dst.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoNothing: true,
		}).CreateInBatches(&inquiries, 100).Error
	})
	return len(inquiries), err
}
