package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AccessLog records one handled API request. Written best-effort by
// middleware and purged by the nightly retention job.
type AccessLog struct {
	BaseUUIDModel
	UserID  *uuid.UUID     `gorm:"type:uuid;index" json:"userId,omitempty"`
	Method  string         `gorm:"type:text"       json:"method"`
	Path    string         `gorm:"type:text"       json:"path"`
	Status  int            `gorm:"type:int"        json:"status"`
	Details datatypes.JSON `gorm:"type:jsonb"      json:"details,omitempty"`
}
