package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON wraps gorm.io/datatypes.JSON so permission grants can migrate to a
// native JSON column where the dialect has one and a text column where it
// does not (sqlserver has no json type).
type JSON struct {
	datatypes.JSON
}

func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType selects the column type per dialect.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "postgres":
		return "JSONB"
	case "mysql", "sqlite":
		return "JSON"
	default:
		return "TEXT"
	}
}
