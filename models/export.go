package models

import "time"

// WarbandRecord is one row of the database export.
type WarbandRecord struct {
	Name          string `gorm:"primaryKey" json:"name"`
	Slug          string `gorm:"index;not null" json:"slug"`
	Position      int    `gorm:"not null" json:"position"` // insertion order in the roster
	Wins          int    `gorm:"default:0" json:"wins"`
	Losses        int    `gorm:"default:0" json:"losses"`
	Glory         int    `gorm:"default:0" json:"glory"`
	Casualties    int    `gorm:"default:0" json:"casualties"`
	VictoryPoints int    `gorm:"default:0" json:"victory_points"`
	ExportID      string `gorm:"index;not null" json:"export_id"`

	Timestamps
}

// MatchRecord is one recorded match in the database export.
type MatchRecord struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Round          int    `gorm:"index;not null" json:"round"`
	Position       int    `gorm:"not null" json:"position"` // index within the round
	Warband1       string `gorm:"index;not null" json:"warband1"`
	Warband2       string `gorm:"index;not null" json:"warband2"`
	Winner         string `gorm:"not null" json:"winner"`
	VictoryPoints1 int    `json:"victory_points1"`
	VictoryPoints2 int    `json:"victory_points2"`
	Glory1         int    `json:"glory1"`
	Glory2         int    `json:"glory2"`
	Casualties1    int    `json:"casualties1"`
	Casualties2    int    `json:"casualties2"`
	ExportID       string `gorm:"index;not null" json:"export_id"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (WarbandRecord) TableName() string {
	return "warbands"
}

// TableName returns the table name for GORM
func (MatchRecord) TableName() string {
	return "matches"
}
