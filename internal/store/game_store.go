package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var summaryColumns = []string{
	"id", "company_id", "name", "description", "fitness_score",
	"cycle_number", "cycle_phase", "created_at", "updated_at",
}

// GameState is the full set of mutable simulation fields. An update writes
// every field: nil JSON and nil scalars are stored as NULL.
type GameState struct {
	BoardState       datatypes.JSON
	AgentAssignments datatypes.JSON
	ActiveDrivers    datatypes.JSON
	CycleNumber      *int
	CyclePhase       *string
	CompletedPhases  datatypes.JSON
	LogEntries       datatypes.JSON
	CustomItems      datatypes.JSON
	FitnessScore     *float64
}

// GameStore persists games.
type GameStore struct {
	db  *gorm.DB
	Now func() time.Time
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db, Now: time.Now}
}

// now reads the clock at the microsecond precision Postgres stores, so the
// timestamps handed back match what a later read returns.
func (s *GameStore) now() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}

// ListByCompany returns summaries of a company's games, most recently updated first.
func (s *GameStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.GameSummary, error) {
	games := []models.GameSummary{}
	err := s.db.WithContext(ctx).
		Model(&models.Game{}).
		Select(summaryColumns).
		Where("company_id = ?", companyID).
		Order("updated_at DESC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// Create inserts a game under a company and returns the full row.
func (s *GameStore) Create(ctx context.Context, companyID uuid.UUID, name string, description *string) (*models.Game, error) {
	now := s.now()
	game := models.Game{
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Omit("Company").Create(&game).Error; err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &game, nil
}

// Get loads a game with all of its JSON payloads.
func (s *GameStore) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	return &game, nil
}

// ReplaceState overwrites every mutable field of a game in one statement and
// refreshes updated_at. Last writer wins.
func (s *GameStore) ReplaceState(ctx context.Context, id uuid.UUID, state GameState) (*models.GameStamp, error) {
	score := 0.0
	if state.FitnessScore != nil {
		score = *state.FitnessScore
	}
	now := s.now()

	result := s.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"board_state":       state.BoardState,
			"agent_assignments": state.AgentAssignments,
			"active_drivers":    state.ActiveDrivers,
			"cycle_number":      state.CycleNumber,
			"cycle_phase":       state.CyclePhase,
			"completed_phases":  state.CompletedPhases,
			"log_entries":       state.LogEntries,
			"custom_items":      state.CustomItems,
			"fitness_score":     score,
			"updated_at":        now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return &models.GameStamp{ID: id, UpdatedAt: now}, nil
}

// Delete removes a game.
func (s *GameStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Game{})
	if result.Error != nil {
		return fmt.Errorf("delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return nil
}
