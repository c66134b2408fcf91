package database

import (
	"fmt"
	"sort"

	"github.com/eventpilot/backend/models"
	"gorm.io/gorm"
)

// TableDrift lists the columns of one table that disagree with its model.
type TableDrift struct {
	Table string
	// Missing holds model columns absent from the database.
	Missing []string
	// Unmapped holds database columns no model field accounts for.
	Unmapped []string
	// TableMissing is set when the table has not been created yet.
	TableMissing bool
}

func (d TableDrift) Clean() bool {
	return !d.TableMissing && len(d.Missing) == 0 && len(d.Unmapped) == 0
}

// ColumnDrift compares every model against the live schema without migrating.
func (d Database) ColumnDrift() ([]TableDrift, error) {
	migrator := d.db.Migrator()

	var report []TableDrift
	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: d.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		drift := TableDrift{Table: stmt.Schema.Table}

		if !migrator.HasTable(model) {
			drift.TableMissing = true
			report = append(report, drift)
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", drift.Table, err)
		}

		dbColumns := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns[ct.Name()] = true
		}
		modelColumns := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			modelColumns[name] = true
			if !dbColumns[name] {
				drift.Missing = append(drift.Missing, name)
			}
		}
		for name := range dbColumns {
			if !modelColumns[name] {
				drift.Unmapped = append(drift.Unmapped, name)
			}
		}
		sort.Strings(drift.Missing)
		sort.Strings(drift.Unmapped)

		report = append(report, drift)
	}

	return report, nil
}
