package integration

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/launchbase/backend/internal/database"
	"github.com/launchbase/backend/internal/models"
	"github.com/launchbase/backend/internal/service"
	"github.com/launchbase/backend/internal/testhelpers"
	"github.com/launchbase/backend/internal/types"
)

func TestBootstrapAgainstPostgres(t *testing.T) {
	db, dsn := testhelpers.SetupPostgresContainer(t)
	ctx := context.Background()

	sqlDB, err := db.DB()
	require.NoError(t, err)

	report := database.Bootstrap(ctx, sqlDB)
	require.True(t, report.OK(), "bootstrap failed: %+v", report.Statements)
	for _, result := range report.Statements {
		assert.Equal(t, "applied", result.Status, "statement %q", result.Name)
	}

	// A second run converges instead of failing.
	rerun := database.Bootstrap(ctx, sqlDB)
	require.True(t, rerun.OK(), "rerun failed: %+v", rerun.Statements)

	require.NoError(t, database.Status(ctx, sqlDB))

	t.Run("trigger creates profile with registration", func(t *testing.T) {
		svc := service.NewAuthService(db, "test-secret")
		user, err := svc.Register(ctx, "jane@example.com", "password123")
		require.NoError(t, err)

		var profile models.UserProfile
		err = db.Where("id = ?", user.ID).First(&profile).Error
		require.NoError(t, err)
		assert.Equal(t, user.Email, profile.Email)
		assert.False(t, profile.HasUsername())
	})

	t.Run("updated_at is refreshed on update", func(t *testing.T) {
		svc := service.NewAuthService(db, "test-secret")
		user, err := svc.Register(ctx, "touch@example.com", "password123")
		require.NoError(t, err)

		var before models.UserProfile
		require.NoError(t, db.Where("id = ?", user.ID).First(&before).Error)

		time.Sleep(10 * time.Millisecond)
		err = db.Exec("UPDATE user_profiles SET bio = 'updated' WHERE id = ?", user.ID.String()).Error
		require.NoError(t, err)

		var after models.UserProfile
		require.NoError(t, db.Where("id = ?", user.ID).First(&after).Error)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	})

	t.Run("deleting the identity removes the profile", func(t *testing.T) {
		svc := service.NewAuthService(db, "test-secret")
		user, err := svc.Register(ctx, "gone@example.com", "password123")
		require.NoError(t, err)

		err = db.Unscoped().Delete(&models.User{}, "id = ?", user.ID).Error
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.UserProfile{}).Where("id = ?", user.ID).Count(&count).Error)
		assert.Zero(t, count, "profile row must not outlive its identity")
	})

	t.Run("profile service works under owner scope", func(t *testing.T) {
		authSvc := service.NewAuthService(db, "test-secret")
		profileSvc := service.NewProfileService(db)

		user, err := authSvc.Register(ctx, "owner@example.com", "password123")
		require.NoError(t, err)

		username := "owner"
		profile, err := profileSvc.UpsertProfile(ctx, user.ID, &types.UpdateProfileRequest{Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "owner", *profile.Username)

		fetched, err := profileSvc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Owner", fetched.FullName)
	})

	t.Run("policies hide other rows from non-owner roles", func(t *testing.T) {
		testRowLevelSecurity(t, db, dsn)
	})
}

// testRowLevelSecurity connects as a separate unprivileged role. The
// service's own connection is the table owner and therefore exempt from
// the policies, so enforcement is only observable from another role.
func testRowLevelSecurity(t *testing.T, db *gorm.DB, dsn string) {
	ctx := context.Background()

	svc := service.NewAuthService(db, "test-secret")
	user, err := svc.Register(ctx, "policies@example.com", "password123")
	require.NoError(t, err)

	for _, stmt := range []string{
		"CREATE ROLE rls_probe LOGIN PASSWORD 'probe'",
		"GRANT SELECT, UPDATE ON user_profiles TO rls_probe",
	} {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}

	probeDSN := strings.Replace(dsn, "user=postgres password=postpass", "user=rls_probe password=probe", 1)
	probe, err := sql.Open("postgres", probeDSN)
	require.NoError(t, err)
	defer probe.Close()

	// Without an owner setting no rows are visible.
	var total int64
	require.NoError(t, probe.QueryRowContext(ctx, "SELECT count(*) FROM user_profiles").Scan(&total))
	assert.Zero(t, total)

	// With the owner setting exactly the caller's own row is visible.
	tx, err := probe.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "SELECT set_config('app.user_id', $1, true)", user.ID.String())
	require.NoError(t, err)

	var visibleID string
	require.NoError(t, tx.QueryRowContext(ctx, "SELECT id FROM user_profiles").Scan(&visibleID))
	assert.Equal(t, user.ID.String(), visibleID)

	var visible int64
	require.NoError(t, tx.QueryRowContext(ctx, "SELECT count(*) FROM user_profiles").Scan(&visible))
	assert.Equal(t, int64(1), visible)

	// Updating someone else's row writes nothing.
	other, err := svc.Register(ctx, "other@example.com", "password123")
	require.NoError(t, err)

	result, err := tx.ExecContext(ctx, "UPDATE user_profiles SET bio = 'hijacked' WHERE id = $1", other.ID.String())
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Zero(t, affected)
}
