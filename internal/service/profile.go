package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/launchbase/backend/internal/database"
	"github.com/launchbase/backend/internal/models"
	"github.com/launchbase/backend/internal/types"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// ProfileService handles user profile operations. Reads and writes of
// the caller's own row run under the owner scope so the row-level
// policies apply; only the username conflict check and the defensive
// profile creation use the privileged system context, because they must
// see (or insert) rows the caller does not own.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves the caller's own profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := database.WithOwner(s.db.WithContext(ctx), userID, func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).First(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile updates the caller's profile. If a username is requested
// it is first checked against every other identity; a taken name fails
// before any write happens. The profile row normally already exists
// (created by the trigger at registration time); if it is missing the
// row is recreated from the identity's email as a defensive fallback.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	if req.Username != nil && *req.Username != "" {
		// Cross-row read: must see rows the caller does not own.
		var count int64
		err := database.SystemContext(s.db.WithContext(ctx)).
			Model(&models.UserProfile{}).
			Where("username = ? AND id <> ?", *req.Username, userID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
	}

	var profile models.UserProfile
	err := database.WithOwner(s.db.WithContext(ctx), userID, func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).First(&profile).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, createErr := s.createMissingProfile(ctx, userID)
		if createErr != nil {
			return nil, createErr
		}
		profile = *created
	} else if err != nil {
		return nil, err
	}

	changes := s.applyUpdates(&profile, req)

	err = database.WithOwner(s.db.WithContext(ctx), userID, func(tx *gorm.DB) error {
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			return tx.Create(&changes).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// createMissingProfile recreates the profile row from the identity
// record. Insert runs on the system context: ordinary callers have no
// insert policy, that privilege belongs to the trigger.
func (s *ProfileService) createMissingProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile := models.UserProfile{
		ID:    userID,
		Email: user.Email,
	}
	if err := database.SystemContext(s.db.WithContext(ctx)).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// applyUpdates mutates the profile in place and returns the change
// records for the fields that actually changed.
func (s *ProfileService) applyUpdates(profile *models.UserProfile, req *types.UpdateProfileRequest) []models.ProfileChange {
	now := time.Now()
	var changes []models.ProfileChange

	record := func(field, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		changes = append(changes, models.ProfileChange{
			UserID:    profile.ID.String(),
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedAt: now,
		})
	}

	if req.Username != nil {
		oldUsername := ""
		if profile.Username != nil {
			oldUsername = *profile.Username
		}
		if *req.Username == "" {
			record("username", oldUsername, "")
			profile.Username = nil
		} else {
			record("username", oldUsername, *req.Username)
			username := *req.Username
			profile.Username = &username
			if profile.FullName == "" && req.FullName == nil {
				profile.FullName = defaultDisplayName(username)
				record("full_name", "", profile.FullName)
			}
		}
	}
	if req.FullName != nil {
		record("full_name", profile.FullName, *req.FullName)
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		record("bio", profile.Bio, *req.Bio)
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		record("avatar_url", profile.AvatarURL, *req.AvatarURL)
		profile.AvatarURL = *req.AvatarURL
	}

	return changes
}

// GetProfileChanges retrieves the change history for the caller's profile.
func (s *ProfileService) GetProfileChanges(ctx context.Context, userID uuid.UUID) ([]models.ProfileChange, error) {
	var changes []models.ProfileChange
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("changed_at DESC").
		Find(&changes).Error
	return changes, err
}

// defaultDisplayName derives a presentable name from a username:
// "jane.doe" becomes "Jane Doe".
func defaultDisplayName(username string) string {
	name := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(username)
	return cases.Title(language.English).String(name)
}
