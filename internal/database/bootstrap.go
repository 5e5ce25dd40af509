package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/lib/pq"
)

// Statement is a single named setup statement.
type Statement struct {
	Name string
	SQL  string
}

// StatementResult reports the outcome of one setup statement.
type StatementResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // applied, exists, failed
	Error  string `json:"error,omitempty"`
}

// Report is the per-statement outcome of a bootstrap run.
type Report struct {
	Statements []StatementResult `json:"statements"`
}

// OK reports whether every statement either applied or already existed.
func (r *Report) OK() bool {
	for _, s := range r.Statements {
		if s.Status == "failed" {
			return false
		}
	}
	return true
}

// Execer is the subset of database/sql used by Bootstrap. Both *sql.DB
// and *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Statements returns the setup sequence in execution order. Every
// statement is idempotent at the definition level: tables and indexes
// use IF NOT EXISTS, and each trigger, function and policy is dropped
// before it is recreated, so the sequence can be re-run any number of
// times and converge on the same schema.
func Statements() []Statement {
	return []Statement{
		{
			Name: "create users table",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id varchar(36) PRIMARY KEY,
				email varchar(255) NOT NULL UNIQUE,
				password_hash text NOT NULL,
				email_verified boolean NOT NULL DEFAULT false,
				verification_token varchar(64),
				verification_expires_at timestamptz,
				reset_token varchar(64),
				reset_expires_at timestamptz,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now(),
				deleted_at timestamptz
			)`,
		},
		{
			Name: "create user_profiles table",
			SQL: `CREATE TABLE IF NOT EXISTS user_profiles (
				id varchar(36) PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
				email varchar(255) NOT NULL UNIQUE,
				username varchar(50) UNIQUE,
				full_name varchar(100),
				avatar_url varchar(255),
				bio text,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "create profile_changes table",
			SQL: `CREATE TABLE IF NOT EXISTS profile_changes (
				id bigserial PRIMARY KEY,
				created_at timestamptz,
				updated_at timestamptz,
				deleted_at timestamptz,
				user_id varchar(36) NOT NULL,
				field text NOT NULL,
				old_value text,
				new_value text,
				changed_at timestamptz NOT NULL
			)`,
		},
		{
			Name: "create profile_changes user index",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_profile_changes_user_id ON profile_changes (user_id)`,
		},
		{
			Name: "drop new-user trigger",
			SQL:  `DROP TRIGGER IF EXISTS on_user_created ON users`,
		},
		{
			Name: "drop new-user function",
			SQL:  `DROP FUNCTION IF EXISTS handle_new_user()`,
		},
		{
			Name: "create new-user function",
			// SECURITY DEFINER: the profile row being created is not yet
			// owned by any authenticated caller, so the insert must run
			// outside the row-level policies.
			SQL: `CREATE FUNCTION handle_new_user() RETURNS trigger
				LANGUAGE plpgsql SECURITY DEFINER AS $$
				BEGIN
					INSERT INTO user_profiles (id, email) VALUES (NEW.id, NEW.email);
					RETURN NEW;
				END;
				$$`,
		},
		{
			Name: "create new-user trigger",
			SQL: `CREATE TRIGGER on_user_created
				AFTER INSERT ON users
				FOR EACH ROW EXECUTE FUNCTION handle_new_user()`,
		},
		{
			Name: "drop updated-at trigger",
			SQL:  `DROP TRIGGER IF EXISTS touch_user_profiles ON user_profiles`,
		},
		{
			Name: "drop updated-at function",
			SQL:  `DROP FUNCTION IF EXISTS touch_updated_at()`,
		},
		{
			Name: "create updated-at function",
			SQL: `CREATE FUNCTION touch_updated_at() RETURNS trigger
				LANGUAGE plpgsql AS $$
				BEGIN
					NEW.updated_at = now();
					RETURN NEW;
				END;
				$$`,
		},
		{
			Name: "create updated-at trigger",
			SQL: `CREATE TRIGGER touch_user_profiles
				BEFORE UPDATE ON user_profiles
				FOR EACH ROW EXECUTE FUNCTION touch_updated_at()`,
		},
		{
			Name: "enable row level security",
			SQL:  `ALTER TABLE user_profiles ENABLE ROW LEVEL SECURITY`,
		},
		{
			Name: "drop select policy",
			SQL:  `DROP POLICY IF EXISTS user_profiles_select_own ON user_profiles`,
		},
		{
			Name: "create select policy",
			SQL: `CREATE POLICY user_profiles_select_own ON user_profiles
				FOR SELECT USING (id = current_setting('app.user_id', true))`,
		},
		{
			Name: "drop update policy",
			SQL:  `DROP POLICY IF EXISTS user_profiles_update_own ON user_profiles`,
		},
		{
			Name: "create update policy",
			SQL: `CREATE POLICY user_profiles_update_own ON user_profiles
				FOR UPDATE USING (id = current_setting('app.user_id', true))
				WITH CHECK (id = current_setting('app.user_id', true))`,
		},
	}
}

// Bootstrap executes the setup sequence and returns a per-statement
// report. A failing statement is recorded and execution continues, so
// the caller always gets a full picture rather than a first-failure
// abort. "Already exists"-class errors are recovered as success.
func Bootstrap(ctx context.Context, db Execer) *Report {
	report := &Report{}
	for _, stmt := range Statements() {
		result := StatementResult{Name: stmt.Name, Status: "applied"}
		if _, err := db.ExecContext(ctx, stmt.SQL); err != nil {
			if isAlreadyExists(err) {
				result.Status = "exists"
			} else {
				result.Status = "failed"
				result.Error = err.Error()
				log.Printf("[Bootstrap] statement %q failed: %v", stmt.Name, err)
			}
		}
		report.Statements = append(report.Statements, result)
	}
	return report
}

// Postgres duplicate-object error classes: table, generic object
// (trigger/policy), function.
var alreadyExistsCodes = map[pq.ErrorCode]bool{
	"42P07": true,
	"42710": true,
	"42723": true,
}

func isAlreadyExists(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && alreadyExistsCodes[pqErr.Code] {
		return true
	}
	return strings.Contains(err.Error(), "already exists")
}

// Status probes whether the profile table is reachable. It is a plain
// readability check and is never treated as evidence that setup
// succeeded.
func Status(ctx context.Context, db *sql.DB) error {
	var one int
	row := db.QueryRowContext(ctx, "SELECT 1 FROM user_profiles LIMIT 1")
	if err := row.Scan(&one); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}
