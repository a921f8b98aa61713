package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	"go.uber.org/zap"
)

// IdeaRepository owns append-only storage of generated ideas.
type IdeaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewIdeaRepository(postgres *PostgresService, logger *zap.Logger) *IdeaRepository {
	return &IdeaRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// InsertContentIdeas appends the ideas and fills their assigned ids and
// timestamps.
func (r *IdeaRepository) InsertContentIdeas(ctx context.Context, ideas []*domain.ContentIdea) error {
	query := `
		INSERT INTO content_ideas
			(user_id, creator_profile_id, title, concept, content_type,
			 visual_elements, call_to_action, why_it_works)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_saved, generated_at
	`

	for _, idea := range ideas {
		visualJSON, err := json.Marshal(idea.VisualElements)
		if err != nil {
			return fmt.Errorf("marshal visual elements: %w", err)
		}

		err = r.db.QueryRowContext(ctx, query,
			idea.UserID, idea.CreatorProfileID, idea.Title, idea.Concept,
			idea.ContentType, visualJSON, idea.CallToAction, idea.WhyItWorks,
		).Scan(&idea.ID, &idea.IsSaved, &idea.GeneratedAt)
		if err != nil {
			return fmt.Errorf("failed to insert content idea: %w", err)
		}
	}

	return nil
}

func (r *IdeaRepository) InsertMonetizationIdeas(ctx context.Context, ideas []*domain.MonetizationIdea) error {
	query := `
		INSERT INTO monetization_ideas
			(user_id, creator_profile_id, brand_name, collaboration_type,
			 pitch_angle, taste_alignment, why_it_works)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_saved, generated_at
	`

	for _, idea := range ideas {
		err := r.db.QueryRowContext(ctx, query,
			idea.UserID, idea.CreatorProfileID, idea.BrandName, idea.CollaborationType,
			idea.PitchAngle, idea.TasteAlignment, idea.WhyItWorks,
		).Scan(&idea.ID, &idea.IsSaved, &idea.GeneratedAt)
		if err != nil {
			return fmt.Errorf("failed to insert monetization idea: %w", err)
		}
	}

	return nil
}

func (r *IdeaRepository) ListContentIdeas(ctx context.Context, userID int64, savedOnly bool) ([]*domain.ContentIdea, error) {
	query := `
		SELECT id, user_id, creator_profile_id, title, concept, content_type,
		       visual_elements, call_to_action, why_it_works, is_saved, generated_at
		FROM content_ideas
		WHERE user_id = $1 AND ($2 = FALSE OR is_saved = TRUE)
		ORDER BY generated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, savedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list content ideas: %w", err)
	}
	defer rows.Close()

	ideas := make([]*domain.ContentIdea, 0)
	for rows.Next() {
		var (
			idea       domain.ContentIdea
			visualJSON []byte
			whyItWorks sql.NullString
		)
		err := rows.Scan(
			&idea.ID, &idea.UserID, &idea.CreatorProfileID, &idea.Title,
			&idea.Concept, &idea.ContentType, &visualJSON, &idea.CallToAction,
			&whyItWorks, &idea.IsSaved, &idea.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content idea: %w", err)
		}

		idea.VisualElements = []string{}
		if len(visualJSON) > 0 {
			// Stored values predating sanitization may hold a bare string
			// or null; anything that is not a JSON list stays empty.
			var elements []string
			if err := json.Unmarshal(visualJSON, &elements); err == nil && elements != nil {
				idea.VisualElements = elements
			}
		}
		if whyItWorks.Valid {
			idea.WhyItWorks = whyItWorks.String
		}

		ideas = append(ideas, &idea)
	}

	return ideas, rows.Err()
}

func (r *IdeaRepository) ListMonetizationIdeas(ctx context.Context, userID int64, savedOnly bool) ([]*domain.MonetizationIdea, error) {
	query := `
		SELECT id, user_id, creator_profile_id, brand_name, collaboration_type,
		       pitch_angle, taste_alignment, why_it_works, is_saved, generated_at
		FROM monetization_ideas
		WHERE user_id = $1 AND ($2 = FALSE OR is_saved = TRUE)
		ORDER BY generated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, savedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list monetization ideas: %w", err)
	}
	defer rows.Close()

	ideas := make([]*domain.MonetizationIdea, 0)
	for rows.Next() {
		var (
			idea       domain.MonetizationIdea
			whyItWorks sql.NullString
		)
		err := rows.Scan(
			&idea.ID, &idea.UserID, &idea.CreatorProfileID, &idea.BrandName,
			&idea.CollaborationType, &idea.PitchAngle, &idea.TasteAlignment,
			&whyItWorks, &idea.IsSaved, &idea.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monetization idea: %w", err)
		}
		if whyItWorks.Valid {
			idea.WhyItWorks = whyItWorks.String
		}

		ideas = append(ideas, &idea)
	}

	return ideas, rows.Err()
}

// ToggleContentIdeaSaved flips the saved flag and returns the new value.
// The bool result is false with a nil error when the idea does not exist.
func (r *IdeaRepository) ToggleContentIdeaSaved(ctx context.Context, userID, ideaID int64) (bool, bool, error) {
	var isSaved bool
	err := r.db.QueryRowContext(ctx,
		`UPDATE content_ideas SET is_saved = NOT is_saved WHERE id = $1 AND user_id = $2 RETURNING is_saved`,
		ideaID, userID,
	).Scan(&isSaved)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to toggle content idea: %w", err)
	}
	return isSaved, true, nil
}

func (r *IdeaRepository) ToggleMonetizationIdeaSaved(ctx context.Context, userID, ideaID int64) (bool, bool, error) {
	var isSaved bool
	err := r.db.QueryRowContext(ctx,
		`UPDATE monetization_ideas SET is_saved = NOT is_saved WHERE id = $1 AND user_id = $2 RETURNING is_saved`,
		ideaID, userID,
	).Scan(&isSaved)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to toggle monetization idea: %w", err)
	}
	return isSaved, true, nil
}

func (r *IdeaRepository) DeleteContentIdea(ctx context.Context, userID, ideaID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM content_ideas WHERE id = $1 AND user_id = $2`,
		ideaID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete content idea: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *IdeaRepository) DeleteMonetizationIdea(ctx context.Context, userID, ideaID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM monetization_ideas WHERE id = $1 AND user_id = $2`,
		ideaID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete monetization idea: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
