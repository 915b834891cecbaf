package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"instruks/internal/config"
	"instruks/internal/domain/models"
	"instruks/internal/domain/services"
	"instruks/internal/repository/postgres"
	"instruks/internal/service"
	"instruks/internal/service/sanitizer"

	loremgen "github.com/bozaro/golorem"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all instruks and categories (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing instruks and categories...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	instruksRepo := postgres.NewInstruksRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services. Seeding goes through the service layer so every
	// row passes validation and sanitization like a real request would.
	htmlSanitizer := sanitizer.New()
	instruksService := service.NewInstruksService(instruksRepo, txManager, htmlSanitizer, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)

	// The service layer gates writes behind the Doctor role
	seedAuth := models.AuthContext{UserID: "00000000-0000-0000-0000-000000000001", IsDoctor: true}

	// Clear existing data so the seed is repeatable
	log.Println("⚠️  Clearing existing instruks and categories...")
	if err := clearAllData(ctx, pool, tables); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📝 Seeding categories...")
	categoryIDs := map[string]string{}
	for _, c := range seedCategories() {
		payload := &services.CategoryPayload{Name: c.name}
		if c.parent != "" {
			parentID := categoryIDs[c.parent]
			payload.ParentID = &parentID
		}
		created, err := categoryService.Create(ctx, seedAuth, payload)
		if err != nil {
			log.Fatalf("❌ Failed to create category '%s': %v", c.name, err)
		}
		categoryIDs[c.name] = created.ID
		log.Printf("✅ Created category: %s (ID: %s)", c.name, created.ID)
	}

	log.Println("📝 Seeding instruks...")
	gen := loremgen.New()
	for i, doc := range seedInstruks(gen) {
		payload := &services.InstruksPayload{
			Title:       doc.title,
			Description: &doc.description,
			Content:     doc.content,
			CategoryID:  categoryIDs[doc.category],
		}
		created, err := instruksService.Create(ctx, seedAuth, payload)
		if err != nil {
			log.Printf("❌ Failed to create instruks '%s': %v", doc.title, err)
			continue
		}
		log.Printf("✅ Created instruks %d: %s (ID: %s, version %d)",
			i+1, doc.title, created.ID, created.VersionNumber)

		// Give some series a revision so the history endpoints have data
		if i%2 == 0 {
			revised := *payload
			revised.Content = payload.Content + seedBody(gen, 1)
			successor, err := instruksService.CreateVersion(ctx, seedAuth, created.ID, &revised)
			if err != nil {
				log.Printf("❌ Failed to create version for '%s': %v", doc.title, err)
				continue
			}
			log.Printf("   ↳ Added version %d (ID: %s)", successor.VersionNumber, successor.ID)
		}
	}

	log.Println("🎉 Seeding complete!")
}

type seedCategory struct {
	name   string
	parent string
}

// seedCategories returns the category tree in insertion order, parents first.
func seedCategories() []seedCategory {
	return []seedCategory{
		{name: "General"},
		{name: "Hygiene", parent: "General"},
		{name: "Medication", parent: "General"},
		{name: "Emergency"},
		{name: "Cardiac Arrest", parent: "Emergency"},
	}
}

type seedDoc struct {
	title       string
	description string
	category    string
	content     string
}

// seedInstruks builds a handful of instruks with generated body text.
func seedInstruks(gen *loremgen.Lorem) []seedDoc {
	return []seedDoc{
		{
			title:       "Hand Hygiene",
			description: "Hand washing and disinfection before and after patient contact.",
			category:    "Hygiene",
			content: "<h1>Hand Hygiene</h1>" +
				"<p><b>Always</b> disinfect hands before patient contact.</p>" +
				seedBody(gen, 2) +
				"<ul><li>Wet hands</li><li>Apply soap</li><li>Scrub for 20 seconds</li></ul>",
		},
		{
			title:       "Medication Dispensing",
			description: "Double-check procedure for dispensing medication.",
			category:    "Medication",
			content: "<h1>Medication Dispensing</h1>" +
				"<p>Follow the <i>five rights</i> before dispensing.</p>" +
				seedBody(gen, 3) +
				"<ol><li>Right patient</li><li>Right drug</li><li>Right dose</li></ol>",
		},
		{
			title:       "Cardiac Arrest Response",
			description: "First responder actions on suspected cardiac arrest.",
			category:    "Cardiac Arrest",
			content: "<h1>Cardiac Arrest Response</h1>" +
				"<p><span style=\"color: red\">Call the resuscitation team immediately.</span></p>" +
				"<blockquote>Start compressions before anything else.</blockquote>" +
				seedBody(gen, 2),
		},
		{
			title:       "Isolation Precautions",
			description: "Contact and droplet isolation for infectious patients.",
			category:    "Hygiene",
			content: "<h2>Isolation Precautions</h2>" +
				seedBody(gen, 4),
		},
	}
}

// seedBody generates n lorem paragraphs wrapped in <p> tags.
func seedBody(gen *loremgen.Lorem, n int) string {
	var out string
	for i := 0; i < n; i++ {
		out += fmt.Sprintf("<p>%s</p>", gen.Paragraph(2, 4))
	}
	return out
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Create categories table
	createCategories := `
		CREATE TABLE IF NOT EXISTS ` + tables.Categories + ` (
			id UUID PRIMARY KEY,
			parent_id UUID REFERENCES ` + tables.Categories + `(id) ON DELETE RESTRICT,
			name TEXT NOT NULL UNIQUE
		)
	`
	if _, err := pool.Exec(ctx, createCategories); err != nil {
		return err
	}

	// Create instruks table. The unique (document_id, version_number)
	// pair is what turns two concurrent branches of the same version
	// into a conflict instead of a forked chain.
	createInstruks := `
		CREATE TABLE IF NOT EXISTS ` + tables.Instruks + ` (
			id UUID PRIMARY KEY,
			document_id UUID NOT NULL,
			version_number INTEGER NOT NULL,
			is_latest BOOLEAN NOT NULL DEFAULT FALSE,
			previous_version_id UUID REFERENCES ` + tables.Instruks + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			description TEXT,
			content TEXT NOT NULL,
			category_id UUID NOT NULL REFERENCES ` + tables.Categories + `(id) ON DELETE RESTRICT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ,
			UNIQUE(document_id, version_number)
		)
	`
	if _, err := pool.Exec(ctx, createInstruks); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `instruks_category_latest ON ` + tables.Instruks + `(category_id, is_latest)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `instruks_document_latest ON ` + tables.Instruks + `(document_id, is_latest)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Instruks,
		tables.Categories,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearAllData clears all instruks and categories
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Instruks); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Categories); err != nil {
		return err
	}
	return nil
}
