package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/repository/postgres"
	"queenzz/internal/service/library"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all libraries and assets (keep schema)")
	file := flag.String("file", "", "Import a JSON library export instead of the sample quizzes")
	name := flag.String("name", "", "Library name for an imported file (defaults to the exported name)")
	into := flag.String("into", "", "Import the file into this library id instead of creating a new library")
	withProgress := flag.Bool("progress", false, "Keep study progress of the imported file")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProd() && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger, closeLog, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("📋 Ensuring schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	store := library.NewStore(
		postgres.NewAppDataRepository(repoConfig),
		postgres.NewAssetRepository(repoConfig),
		postgres.NewTransactionManager(repoConfig),
		logger,
	)
	sanitizer := library.NewTextSanitizer()

	if *file != "" {
		lib, err := importFile(ctx, library.NewTransferService(store, sanitizer, logger), *file, *name, *into, *withProgress)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *file, err)
		}
		log.Printf("🎉 Imported %s into library %q (%s)", *file, lib.Name, lib.ID)
		return
	}

	log.Println("📝 Seeding sample quizzes...")
	items := library.NewItemService(store, sanitizer, logger)
	quizzes, err := items.AddQuizzes(ctx, &svc.AddQuizzesRequest{Quizzes: sampleQuizzes()})
	if err != nil {
		log.Fatalf("Failed to seed quizzes: %v", err)
	}
	if _, err := items.AddDeck(ctx, &svc.AddDeckRequest{Title: "Organelles", Cards: sampleCards()}); err != nil {
		log.Fatalf("Failed to seed deck: %v", err)
	}
	log.Printf("🎉 Seeding complete! %d quizzes and 1 deck", len(quizzes))
}

func importFile(ctx context.Context, transfer svc.TransferService, path, name, into string, withProgress bool) (*models.Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data models.Library
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	req := &svc.ImportRequest{
		Mode:             svc.ImportAsNew,
		Name:             name,
		IncludeProgress:  withProgress,
		IncludeDocuments: true,
		Data:             &data,
	}
	if into != "" {
		req.Mode = svc.ImportInto
		req.TargetLibraryID = into
	}
	return transfer.Import(ctx, req)
}

func sampleQuizzes() []models.GeneratedQuiz {
	return []models.GeneratedQuiz{
		{
			Title: "Cell biology",
			Questions: []models.Question{
				{
					Question:      "Which organelle holds most of the cell's DNA?",
					Options:       []string{"Nucleus", "Ribosome", "Golgi apparatus", "Lysosome"},
					CorrectAnswer: "Nucleus",
					Explanation:   "Nuclear DNA is packed into chromatin inside the nucleus.",
				},
				{
					Question:      "Where does most ATP synthesis take place?",
					Options:       []string{"Cytosol", "Mitochondria", "Endoplasmic reticulum", "Peroxisome"},
					CorrectAnswer: "Mitochondria",
					Explanation:   "Oxidative phosphorylation runs on the inner mitochondrial membrane.",
				},
			},
		},
		{
			Title: "Genetics",
			Questions: []models.Question{
				{
					Question:      "Which base pairs with adenine in DNA?",
					Options:       []string{"Cytosine", "Guanine", "Thymine", "Uracil"},
					CorrectAnswer: "Thymine",
					Explanation:   "Uracil replaces thymine only in RNA.",
				},
			},
		},
	}
}

func sampleCards() []models.Flashcard {
	return []models.Flashcard{
		{Front: "Ribosome", Back: "Synthesizes proteins"},
		{Front: "Lysosome", Back: "Digests macromolecules"},
	}
}
