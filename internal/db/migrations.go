package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	embeddedmigrations "unwind/migrations"
)

// migrationScript is one embedded *.sql file. The numeric filename prefix
// orders scripts and doubles as the ledger version.
type migrationScript struct {
	version string
	order   int
	name    string
	sql     string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := createMigrationLedger(database); err != nil {
		return err
	}

	scripts, err := loadEmbeddedMigrations()
	if err != nil {
		return err
	}

	applied, err := appliedMigrationVersions(database)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		if _, done := applied[script.version]; done {
			continue
		}
		if err := runMigrationScript(database, script); err != nil {
			return err
		}
	}
	return nil
}

func createMigrationLedger(database *gorm.DB) error {
	const ledgerSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func loadEmbeddedMigrations() ([]migrationScript, error) {
	fileNames, err := fs.Glob(embeddedmigrations.Files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("glob embedded migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(fileNames))
	byVersion := make(map[string]string, len(fileNames))
	for _, fileName := range fileNames {
		version, _, found := strings.Cut(fileName, "_")
		if !found {
			return nil, fmt.Errorf("migration %s lacks a version prefix", fileName)
		}
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s has a non-numeric version prefix: %w", fileName, err)
		}
		if other, clash := byVersion[version]; clash {
			return nil, fmt.Errorf("migrations %s and %s share version %s", other, fileName, version)
		}
		byVersion[version] = fileName

		body, err := fs.ReadFile(embeddedmigrations.Files, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}
		scripts = append(scripts, migrationScript{
			version: version,
			order:   order,
			name:    fileName,
			sql:     string(body),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].order < scripts[j].order
	})
	return scripts, nil
}

func appliedMigrationVersions(database *gorm.DB) (map[string]struct{}, error) {
	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		applied[row.Version] = struct{}{}
	}
	return applied, nil
}

// runMigrationScript executes every statement of one script and records its
// version inside the same transaction, so a failed script leaves no trace.
func runMigrationScript(database *gorm.DB, script migrationScript) error {
	statements := splitStatements(script.sql)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s contains no statements", script.name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("apply migration %s: %q: %w", script.name, statement, err)
			}
		}
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			script.version,
			script.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}

// splitStatements drops -- line comments, then cuts the script on semicolons.
// Statement bodies must not embed semicolons inside string literals.
func splitStatements(script string) []string {
	kept := make([]string, 0)
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	statements := make([]string, 0)
	for _, chunk := range strings.Split(strings.Join(kept, "\n"), ";") {
		statement := strings.TrimSpace(chunk)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}
	return statements
}
