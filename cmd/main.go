package main

import (
	"log"
	"os"

	"github.com/p3mo/userdir/internal/config"
	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/pdf"
	"github.com/p3mo/userdir/internal/role"
	"github.com/p3mo/userdir/internal/server"
	"github.com/p3mo/userdir/internal/user"
	"github.com/p3mo/userdir/internal/utils"
)

func main() {
	cfg := config.Load()

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("Required environment variable %s is not set", key)
		}
	}
	log.Println("Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Database connection failed: ", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Printf("SQL migrations failed: %v", err)
		log.Println("Run migrations manually: psql -U user -d dbname -f migrations/001_add_user_indexes.sql")
	}

	// ========== STORAGE SETUP ==========
	if err := utils.InitLocalStorage(); err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	if os.Getenv("USE_S3") == "true" {
		s3Bucket := os.Getenv("S3_BUCKET")
		s3Region := os.Getenv("S3_REGION")
		cloudfrontURL := os.Getenv("CLOUDFRONT_URL")

		if s3Bucket != "" && s3Region != "" {
			if err := utils.InitS3(s3Bucket, s3Region, cloudfrontURL); err != nil {
				log.Println("S3 initialization failed, falling back to local storage: ", err)
				utils.SetStorageMode(true)
			} else {
				log.Printf("Using S3 avatar storage: %s (region: %s)", s3Bucket, s3Region)
			}
		} else {
			log.Println("USE_S3=true but S3_BUCKET or S3_REGION not configured, falling back to local storage")
		}
	} else {
		utils.SetStorageMode(true)
	}

	// ========== SEED DEFAULT DATA ==========
	// Roles first: user details reference them.
	if err := role.SeedDefaultRoles(db); err != nil {
		log.Fatal("Failed to seed roles: ", err)
	}
	log.Println("Default roles seeded")

	if err := user.SeedSampleUser(db); err != nil {
		log.Println("Failed to seed sample user (may already exist): ", err)
	}

	// ========== START SERVER ==========
	pdf.FrontendURL = cfg.FrontendURL

	app := server.New(db)

	log.Printf("User directory server starting on %s", cfg.ServerAddr)
	log.Printf("Avatar storage mode: %s", utils.GetStorageMode())
	log.Printf("PDF frontend base URL: %s", cfg.FrontendURL)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
