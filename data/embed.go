// Package data embeds the database init SQL so the testcontainers harness
// can seed a fresh MariaDB without mounting files into the container.
package data

import (
	_ "embed"
)

// InitdbMariaDBTables is the jobtrack schema DDL.
//
//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

// InitdbMariaDBPrivileges grants the app user its table privileges.
//
//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
