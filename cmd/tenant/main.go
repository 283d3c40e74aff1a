// Package main provides CLI for tenant management.
// Usage: tenant create --slug acme --name "ACME Corp"
//        tenant list
//        tenant init-meta
//        tenant suspend <tenant-id>
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"krilo/internal/core/tenant"
	"krilo/migrations"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "create":
		createTenant(ctx)
	case "list":
		listTenants(ctx)
	case "init-meta":
		initMeta(ctx)
	case "suspend":
		setStatus(ctx, tenant.StatusSuspended)
	case "activate":
		setStatus(ctx, tenant.StatusActive)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Krilo Tenant Management CLI

Usage:
  tenant <command> [options]

Commands:
  create     Provision a new tenant (database, schema, registry row)
  list       List all tenants
  init-meta  Apply the meta-database schema (tenants, users)
  suspend    Suspend a tenant
  activate   Activate a suspended tenant
  help       Show this help

Environment Variables:
  META_DATABASE_URL    Connection string for meta database (required)
  TENANT_DB_USER       Username for tenant databases (required for create)
  TENANT_DB_PASSWORD   Password for tenant databases (required for create)
  POSTGRES_ADMIN_URL   Admin connection for creating databases

Examples:
  tenant init-meta
  tenant create --slug acme --name "ACME Corporation"
  tenant list
  tenant suspend <tenant-uuid>
  tenant activate <tenant-uuid>`)
}

func getMetaPool(ctx context.Context) *pgxpool.Pool {
	metaDSN := os.Getenv("META_DATABASE_URL")
	if metaDSN == "" {
		fmt.Println("Error: META_DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, metaDSN)
	if err != nil {
		fmt.Printf("Error connecting to meta database: %v\n", err)
		os.Exit(1)
	}

	return pool
}

func initMeta(ctx context.Context) {
	metaPool := getMetaPool(ctx)
	defer metaPool.Close()

	if _, err := metaPool.Exec(ctx, migrations.MetaSchema); err != nil {
		fmt.Printf("Error applying meta schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Meta schema applied")
}

func createTenant(ctx context.Context) {
	var slug, name string

	for i := 2; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--slug":
			if i+1 < len(os.Args) {
				slug = os.Args[i+1]
				i++
			}
		case "--name":
			if i+1 < len(os.Args) {
				name = os.Args[i+1]
				i++
			}
		}
	}

	if slug == "" || name == "" {
		fmt.Println("Error: --slug and --name are required")
		fmt.Println("Usage: tenant create --slug <slug> --name <name>")
		os.Exit(1)
	}

	dbUser := os.Getenv("TENANT_DB_USER")
	dbPassword := os.Getenv("TENANT_DB_PASSWORD")
	if dbUser == "" || dbPassword == "" {
		fmt.Println("Error: TENANT_DB_USER and TENANT_DB_PASSWORD are required")
		os.Exit(1)
	}

	adminDSN := os.Getenv("POSTGRES_ADMIN_URL")
	if adminDSN == "" {
		adminDSN = os.Getenv("META_DATABASE_URL")
	}

	metaPool := getMetaPool(ctx)
	defer metaPool.Close()

	registry := tenant.NewPostgresRegistry(metaPool)
	provisioner := tenant.NewProvisioner(registry, tenant.ProvisionerConfig{
		AdminDSN:   adminDSN,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		SchemaSQL:  migrations.TenantSchema,
	})

	fmt.Printf("Provisioning tenant '%s'...\n", slug)

	t, err := provisioner.Provision(ctx, tenant.CreateTenantInput{
		Slug:        slug,
		DisplayName: name,
	})
	if err != nil {
		fmt.Printf("Error provisioning tenant: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTenant '%s' created successfully\n", slug)
	fmt.Printf("  Tenant ID: %s\n", t.ID)
	fmt.Printf("  Database:  %s\n", t.DBName)
	fmt.Printf("  Status:    %s\n", t.Status)
}

func listTenants(ctx context.Context) {
	metaPool := getMetaPool(ctx)
	defer metaPool.Close()

	registry := tenant.NewPostgresRegistry(metaPool)
	tenants, err := registry.ListAll(ctx)
	if err != nil {
		fmt.Printf("Error listing tenants: %v\n", err)
		os.Exit(1)
	}

	if len(tenants) == 0 {
		fmt.Println("No tenants found")
		return
	}

	fmt.Printf("%-36s %-20s %-30s %-20s %-10s\n", "TENANT_ID", "SLUG", "NAME", "DATABASE", "STATUS")
	fmt.Println(strings.Repeat("-", 120))

	for _, t := range tenants {
		fmt.Printf("%-36s %-20s %-30s %-20s %-10s\n",
			truncate(t.ID, 36),
			truncate(t.Slug, 20),
			truncate(t.DisplayName, 30),
			truncate(t.DBName, 20),
			t.Status,
		)
	}
}

func setStatus(ctx context.Context, status tenant.Status) {
	if len(os.Args) < 3 {
		fmt.Printf("Error: tenant %s <tenant-uuid>\n", os.Args[1])
		os.Exit(1)
	}
	tenantID := os.Args[2]

	metaPool := getMetaPool(ctx)
	defer metaPool.Close()

	registry := tenant.NewPostgresRegistry(metaPool)
	if err := registry.UpdateStatusByID(ctx, tenantID, status); err != nil {
		fmt.Printf("Error updating tenant status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tenant %s is now %s\n", tenantID, status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
