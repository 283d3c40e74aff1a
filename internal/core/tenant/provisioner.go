package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"krilo/pkg/logger"
)

// ProvisionerConfig holds what the provisioner needs to create partitions.
type ProvisionerConfig struct {
	// AdminDSN connects to the postgres maintenance database with
	// CREATE DATABASE rights.
	AdminDSN string

	// DBUser and DBPassword are the credentials tenant pools use.
	DBUser     string
	DBPassword string

	// SchemaSQL is the tenant schema applied to a fresh partition.
	SchemaSQL string
}

// Provisioner creates tenant partitions: database, schema, registry row.
type Provisioner struct {
	registry Registry
	config   ProvisionerConfig
}

// NewProvisioner creates a tenant provisioner.
func NewProvisioner(registry Registry, config ProvisionerConfig) *Provisioner {
	return &Provisioner{registry: registry, config: config}
}

// Provision creates the partition database, applies the schema and
// registers the tenant. Returns the registered tenant.
// On schema failure the created database is left in place for manual
// inspection; the registry row is not written, so the tenant stays
// invisible to the resolver.
func (p *Provisioner) Provision(ctx context.Context, input CreateTenantInput) (*Tenant, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t := &Tenant{
		Slug:        input.Slug,
		DisplayName: input.DisplayName,
		DBName:      input.GenerateDBName(),
		DBHost:      input.DBHost,
		DBPort:      input.DBPort,
		Status:      StatusActive,
	}
	if t.DBHost == "" {
		t.DBHost = "localhost"
	}
	if t.DBPort == 0 {
		t.DBPort = 5432
	}

	if err := p.createDatabase(ctx, t.DBName); err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}

	if err := p.applySchema(ctx, t); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := p.registry.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("register tenant: %w", err)
	}

	logger.Info(ctx, "tenant provisioned",
		"tenant_id", t.ID,
		"slug", t.Slug,
		"db_name", t.DBName,
	)
	return t, nil
}

func (p *Provisioner) createDatabase(ctx context.Context, dbName string) error {
	adminPool, err := pgxpool.New(ctx, p.config.AdminDSN)
	if err != nil {
		return fmt.Errorf("connect as admin: %w", err)
	}
	defer adminPool.Close()

	// Database names come from validated slugs, but quote anyway
	_, err = adminPool.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q`, dbName))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return err
	}
	return nil
}

func (p *Provisioner) applySchema(ctx context.Context, t *Tenant) error {
	if p.config.SchemaSQL == "" {
		return nil
	}

	pool, err := pgxpool.New(ctx, t.DSN(p.config.DBUser, p.config.DBPassword))
	if err != nil {
		return fmt.Errorf("connect to partition: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, p.config.SchemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}
