package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogrepo "github.com/light-bringer/storefront-service/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
)

type options struct {
	projectID  string
	instanceID string
	databaseID string
	migrateDir string
	seed       bool
}

func (o options) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", o.projectID, o.instanceID)
}

func (o options) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", o.instancePath(), o.databaseID)
}

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.projectID, "project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	flag.StringVar(&opts.instanceID, "instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	flag.StringVar(&opts.databaseID, "database", getEnvOrDefault("SPANNER_DATABASE_ID", "storefront-db"), "Spanner database ID")
	flag.StringVar(&opts.migrateDir, "migrations", "migrations", "Directory containing migration SQL files")
	flag.BoolVar(&opts.seed, "seed", false, "Load the embedded catalog seed after migrating")
	flag.Parse()

	logger, err := logging.New(getEnvOrDefault("APP_ENV", "development"), "storefront-migrate")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logger.Info("using Spanner emulator", zap.String("host", host))
	}

	m := &migrator{opts: opts, logger: logger}
	if err := m.run(context.Background()); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations completed")
}

type migrator struct {
	opts   options
	logger *zap.Logger
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if m.opts.seed {
		if err := m.loadSeed(ctx); err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
	}
	return nil
}

// ensureInstance only creates instances on the emulator; real instances are provisioned elsewhere.
func (m *migrator) ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.opts.instancePath()})
	if err == nil {
		m.logger.Debug("instance exists", zap.String("instance", m.opts.instanceID))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.logger.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	m.logger.Info("creating instance", zap.String("instance", m.opts.instanceID))
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.opts.projectID,
		InstanceId: m.opts.instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.opts.projectID),
			DisplayName: "Storefront Development",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.logger.Warn("instance creation did not confirm", zap.Error(err))
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.opts.databasePath()})
	if err == nil {
		m.logger.Debug("database exists", zap.String("database", m.opts.databaseID))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			m.logger.Warn("proceeding with database in emulator mode", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.logger.Info("creating database", zap.String("database", m.opts.databaseID))
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.opts.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.opts.databaseID),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations runs every file in name order. Files whose tables already
// exist are skipped, so the command can be re-run against a live database.
func (m *migrator) applyMigrations(ctx context.Context) error {
	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	files, err := filepath.Glob(filepath.Join(m.opts.migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		m.logger.Warn("no migration files found", zap.String("dir", m.opts.migrateDir))
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.opts.databasePath(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			if status.Code(err) == codes.FailedPrecondition && strings.Contains(err.Error(), "Duplicate name") {
				m.logger.Info("migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		m.logger.Info("applied migration", zap.String("file", name))
	}
	return nil
}

// loadSeed upserts the embedded catalog, keeping the seed order as relevance.
func (m *migrator) loadSeed(ctx context.Context) error {
	seed, err := catalogrepo.LoadSeed()
	if err != nil {
		return err
	}

	client, err := spanner.NewClient(ctx, m.opts.databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	model := m_product.NewModel()
	plan := committer.NewPlan()
	for i, p := range seed.Products {
		plan.Add(model.UpsertMut(catalogrepo.ProductToData(p, i)))
	}
	if err := committer.NewCommitter(client).Apply(ctx, plan); err != nil {
		return err
	}

	m.logger.Info("catalog seeded", zap.Int("products", plan.Count()))
	return nil
}

func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
