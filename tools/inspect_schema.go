// Dumps the DDL that gorm automigration generates for the jobtrack models.
// Useful for keeping data/initdb in sync with model changes.
package main

import (
	"fmt"
	"log"

	"github.com/jobwell/jobtrack/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.JobUser{},
		&models.Event{},
		&models.UserPermission{},
	); err != nil {
		log.Fatal(err)
	}

	var rows []struct {
		Name string
		Sql  string
	}
	db.Raw("SELECT name, sql FROM sqlite_master WHERE type = 'table' ORDER BY name").Scan(&rows)

	for _, row := range rows {
		fmt.Printf("\n=== Table: %s ===\n%s\n", row.Name, row.Sql)
	}
}
