package postgres

import "embed"

// Migrations holds the embedded goose SQL migrations for the application
// schema. The server applies them at startup via goose.SetBaseFS.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migrations inside the embedded filesystem.
const MigrationsDir = "migrations"
