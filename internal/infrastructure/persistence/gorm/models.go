// Package gorm provides GORM model definitions and repositories. The models
// are the only persisted shapes; domain code never sees them.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberModel represents the persisted member profile
type MemberModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	FoyerID     uuid.UUID   `gorm:"type:char(36);not null;index"`
	Email       string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName string      `gorm:"type:varchar(255)"`
	Plan        string      `gorm:"type:varchar(20);default:'free'"`
	Diet        string      `gorm:"type:varchar(100)"`
	EmailAlerts bool        `gorm:"default:true"`
	Role        string      `gorm:"type:varchar(20);default:'member'"`
	Permissions StringSlice `gorm:"type:json"`
	Status      string      `gorm:"type:varchar(20);default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductModel represents the persisted pantry product
type ProductModel struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`
	FoyerID      uuid.UUID  `gorm:"type:char(36);not null;index"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Quantity     float64    `gorm:"not null;default:0"`
	Unit         string     `gorm:"type:varchar(50)"`
	Category     string     `gorm:"type:varchar(100)"`
	MinThreshold float64    `gorm:"not null;default:0"`
	ExpiryDate   *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time
}

// RecipeModel represents the persisted recipe
type RecipeModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	FoyerID     uuid.UUID   `gorm:"type:char(36);not null;index"`
	Title       string      `gorm:"type:varchar(255);not null"`
	Description string      `gorm:"type:text"`
	Ingredients JSONColumn  `gorm:"type:json"`
	Steps       StringSlice `gorm:"type:json"`
	PrepTime    string      `gorm:"type:varchar(50)"`
	Calories    int         `gorm:"default:0"`
	Servings    int         `gorm:"default:0"`
	ImageRef    string      `gorm:"type:text"`
	AIGenerated bool        `gorm:"default:false"`
	CreatedAt   time.Time   `gorm:"index"`
}

// SlotModel represents the persisted meal-plan slot. One slot per
// (foyer, date, meal type) cell.
type SlotModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	FoyerID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uk_cell,priority:1"`
	Date        time.Time `gorm:"not null;uniqueIndex:uk_cell,priority:2;index"`
	MealType    string    `gorm:"type:varchar(20);not null;uniqueIndex:uk_cell,priority:3"`
	RecipeID    uuid.UUID `gorm:"type:char(36);not null"`
	RecipeTitle string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
}

// TicketModel represents the persisted receipt with embedded line items
type TicketModel struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	FoyerID   uuid.UUID  `gorm:"type:char(36);not null;index"`
	StoreName string     `gorm:"type:varchar(255);not null"`
	Date      time.Time  `gorm:"index"`
	Total     float64    `gorm:"not null;default:0"`
	Items     JSONColumn `gorm:"type:json"`
	CreatedAt time.Time  `gorm:"index"`
	UpdatedAt time.Time
}

// StringSlice stores a string slice as a JSON column
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONColumn stores an arbitrary JSON document
type JSONColumn json.RawMessage

// Scan implements the sql.Scanner interface
func (j *JSONColumn) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSONColumn(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONColumn", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONColumn) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "[]", nil
	}
	return []byte(j), nil
}

// BeforeCreate hook for ProductModel
func (p *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for SlotModel
func (s *SlotModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for TicketModel
func (t *TicketModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (MemberModel) TableName() string {
	return "profiles"
}

func (ProductModel) TableName() string {
	return "products"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (SlotModel) TableName() string {
	return "meal_plan_slots"
}

func (TicketModel) TableName() string {
	return "tickets"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&MemberModel{},
		&ProductModel{},
		&RecipeModel{},
		&SlotModel{},
		&TicketModel{},
	}
}
