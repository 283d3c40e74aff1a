// Package migrations embeds the SQL schemas so the provisioner can
// apply the tenant schema without a migration tool on the host.
package migrations

import _ "embed"

// TenantSchema is the full schema applied to a fresh tenant partition.
//
//go:embed tenant/0001_schema.sql
var TenantSchema string

// MetaSchema is the meta-database schema (tenant registry, users).
//
//go:embed meta/0001_init.sql
var MetaSchema string
