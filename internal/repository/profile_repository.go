package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	"go.uber.org/zap"
)

type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProfileRepository(postgres *PostgresService, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

const profileColumns = `
	id, user_id, profile_name, niche_description, keywords, brand_voice,
	negative_keywords, social_platform, social_handle, audience_data,
	taste_profile, created_at, updated_at
`

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.CreatorProfile) error {
	keywordsJSON, err := json.Marshal(profile.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	negativeJSON, err := json.Marshal(profile.NegativeKeywords)
	if err != nil {
		return fmt.Errorf("marshal negative keywords: %w", err)
	}

	query := `
		INSERT INTO creator_profiles
			(user_id, profile_name, niche_description, keywords, brand_voice,
			 negative_keywords, social_platform, social_handle, audience_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.ProfileName, profile.NicheDescription, keywordsJSON,
		nullableString(profile.BrandVoice), negativeJSON, profile.SocialPlatform,
		profile.SocialHandle, profile.AudienceData,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert creator profile: %w", err)
	}

	return nil
}

// FindByID returns the profile only when it belongs to userID; nil without
// error otherwise.
func (r *ProfileRepository) FindByID(ctx context.Context, userID, profileID int64) (*domain.CreatorProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM creator_profiles
		WHERE id = $1 AND user_id = $2
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query, profileID, userID)
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query creator profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.CreatorProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM creator_profiles
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*domain.CreatorProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.CreatorProfile) (bool, error) {
	keywordsJSON, err := json.Marshal(profile.Keywords)
	if err != nil {
		return false, fmt.Errorf("marshal keywords: %w", err)
	}
	negativeJSON, err := json.Marshal(profile.NegativeKeywords)
	if err != nil {
		return false, fmt.Errorf("marshal negative keywords: %w", err)
	}

	query := `
		UPDATE creator_profiles
		SET profile_name = $1, niche_description = $2, keywords = $3,
		    brand_voice = $4, negative_keywords = $5, social_platform = $6,
		    social_handle = $7, audience_data = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		profile.ProfileName, profile.NicheDescription, keywordsJSON,
		nullableString(profile.BrandVoice), negativeJSON, profile.SocialPlatform,
		profile.SocialHandle, profile.AudienceData, profile.ID, profile.UserID,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update creator profile: %w", err)
	}

	return true, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID, profileID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM creator_profiles WHERE id = $1 AND user_id = $2`,
		profileID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete creator profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SaveTasteProfile overwrites the stored taste profile for the creator
// profile; any prior analysis is replaced, no history is kept.
func (r *ProfileRepository) SaveTasteProfile(ctx context.Context, userID, profileID int64, tasteProfile *domain.TasteProfile) error {
	profileJSON, err := json.Marshal(tasteProfile)
	if err != nil {
		return fmt.Errorf("marshal taste profile: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE creator_profiles SET taste_profile = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		profileJSON, profileID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to store taste profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.CreatorProfile, error) {
	var (
		profile      domain.CreatorProfile
		keywordsJSON []byte
		brandVoice   sql.NullString
		negativeJSON []byte
		tasteJSON    []byte
	)

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.ProfileName, &profile.NicheDescription,
		&keywordsJSON, &brandVoice, &negativeJSON, &profile.SocialPlatform,
		&profile.SocialHandle, &profile.AudienceData, &tasteJSON,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(keywordsJSON) > 0 {
		if err := json.Unmarshal(keywordsJSON, &profile.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	if len(negativeJSON) > 0 {
		if err := json.Unmarshal(negativeJSON, &profile.NegativeKeywords); err != nil {
			return nil, fmt.Errorf("unmarshal negative keywords: %w", err)
		}
	}
	if brandVoice.Valid {
		profile.BrandVoice = brandVoice.String
	}
	if len(tasteJSON) > 0 {
		var tasteProfile domain.TasteProfile
		if err := json.Unmarshal(tasteJSON, &tasteProfile); err != nil {
			return nil, fmt.Errorf("unmarshal taste profile: %w", err)
		}
		profile.TasteProfile = &tasteProfile
	}

	return &profile, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
