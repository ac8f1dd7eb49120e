package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Defaults written on creation for fields the caller does not supply.
const (
	DefaultCycleNumber = 1
	DefaultCyclePhase  = "setup"
)

// Game is a simulation record owned by one company. The JSON columns are
// opaque to this service and are replaced wholesale on update.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *Company  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`

	BoardState       datatypes.JSON `json:"board_state" swaggertype:"object"`
	AgentAssignments datatypes.JSON `json:"agent_assignments" swaggertype:"object"`
	ActiveDrivers    datatypes.JSON `json:"active_drivers" swaggertype:"array,object"`
	CycleNumber      *int           `json:"cycle_number"`
	CyclePhase       *string        `gorm:"type:text" json:"cycle_phase"`
	CompletedPhases  datatypes.JSON `json:"completed_phases" swaggertype:"array,object"`
	LogEntries       datatypes.JSON `json:"log_entries" swaggertype:"array,object"`
	CustomItems      datatypes.JSON `json:"custom_items" swaggertype:"array,object"`
	FitnessScore     float64        `gorm:"not null;default:0" json:"fitness_score"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;index" json:"updated_at"`
}

// BeforeCreate assigns the identifier and fills empty containers and the
// initial cycle markers.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.BoardState == nil {
		g.BoardState = datatypes.JSON(`{}`)
	}
	if g.AgentAssignments == nil {
		g.AgentAssignments = datatypes.JSON(`{}`)
	}
	if g.ActiveDrivers == nil {
		g.ActiveDrivers = datatypes.JSON(`[]`)
	}
	if g.CompletedPhases == nil {
		g.CompletedPhases = datatypes.JSON(`[]`)
	}
	if g.LogEntries == nil {
		g.LogEntries = datatypes.JSON(`[]`)
	}
	if g.CustomItems == nil {
		g.CustomItems = datatypes.JSON(`[]`)
	}
	if g.CycleNumber == nil {
		n := DefaultCycleNumber
		g.CycleNumber = &n
	}
	if g.CyclePhase == nil {
		p := DefaultCyclePhase
		g.CyclePhase = &p
	}
	return nil
}

// GameSummary is the list projection of a game; it leaves out the JSON payloads.
type GameSummary struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	FitnessScore float64   `json:"fitness_score"`
	CycleNumber  *int      `json:"cycle_number"`
	CyclePhase   *string   `json:"cycle_phase"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (GameSummary) TableName() string { return "games" }

// GameStamp is returned by an update: the row id and its new updated_at.
type GameStamp struct {
	ID        uuid.UUID `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}
