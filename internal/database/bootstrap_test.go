package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/launchbase/backend/internal/database"
)

func TestStatementsAreIdempotent(t *testing.T) {
	statements := database.Statements()
	assert.NotEmpty(t, statements)

	dropped := make(map[string]bool)
	for _, stmt := range statements {
		sql := strings.Join(strings.Fields(stmt.SQL), " ")

		switch {
		case strings.HasPrefix(sql, "CREATE TABLE"), strings.HasPrefix(sql, "CREATE INDEX"):
			assert.Contains(t, sql, "IF NOT EXISTS", "statement %q must tolerate re-runs", stmt.Name)
		case strings.HasPrefix(sql, "DROP"):
			assert.Contains(t, sql, "IF EXISTS", "statement %q must tolerate a clean database", stmt.Name)
			dropped[objectName(sql)] = true
		case strings.HasPrefix(sql, "CREATE TRIGGER"), strings.HasPrefix(sql, "CREATE FUNCTION"), strings.HasPrefix(sql, "CREATE POLICY"):
			// Recreated objects must have been dropped earlier in the
			// sequence, otherwise a second run fails.
			assert.True(t, dropped[objectName(sql)], "statement %q is not preceded by a matching drop", stmt.Name)
		case strings.HasPrefix(sql, "ALTER TABLE"):
			assert.Contains(t, sql, "ENABLE ROW LEVEL SECURITY")
		default:
			t.Errorf("statement %q has unrecognized shape: %s", stmt.Name, sql)
		}
	}
}

// objectName extracts the created or dropped object's name, the third
// word of every DDL statement in the sequence.
func objectName(sql string) string {
	fields := strings.Fields(sql)
	name := fields[2]
	if name == "IF" { // DROP x IF EXISTS name
		name = fields[4]
	}
	return strings.TrimSuffix(name, "()")
}

func TestBootstrapAppliesAllStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	statements := database.Statements()
	for range statements {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	report := database.Bootstrap(context.Background(), db)
	assert.True(t, report.OK())
	assert.Len(t, report.Statements, len(statements))
	for _, result := range report.Statements {
		assert.Equal(t, "applied", result.Status)
		assert.Empty(t, result.Error)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrapContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	statements := database.Statements()
	for i := range statements {
		if i == 1 {
			mock.ExpectExec(".*").WillReturnError(errors.New("permission denied"))
			continue
		}
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	report := database.Bootstrap(context.Background(), db)
	assert.False(t, report.OK())
	assert.Len(t, report.Statements, len(statements))

	assert.Equal(t, "failed", report.Statements[1].Status)
	assert.Contains(t, report.Statements[1].Error, "permission denied")
	for i, result := range report.Statements {
		if i == 1 {
			continue
		}
		assert.Equal(t, "applied", result.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrapRecoversAlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	statements := database.Statements()
	for i := range statements {
		switch i {
		case 0:
			mock.ExpectExec(".*").WillReturnError(&pq.Error{Code: "42P07", Message: "relation already exists"})
		case 2:
			mock.ExpectExec(".*").WillReturnError(errors.New(`trigger "on_user_created" already exists`))
		default:
			mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	report := database.Bootstrap(context.Background(), db)
	assert.True(t, report.OK())
	assert.Equal(t, "exists", report.Statements[0].Status)
	assert.Equal(t, "exists", report.Statements[2].Status)
	assert.Empty(t, report.Statements[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusToleratesEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM user_profiles").WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	assert.NoError(t, database.Status(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusReportsMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM user_profiles").
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "user_profiles" does not exist`})

	err = database.Status(context.Background(), db)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
