package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Deliverable is one submitted piece of content. Revisions are new rows, the
// rejected row keeps its review history.
type Deliverable struct {
	ID            uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ApplicationID uuid.UUID               `gorm:"column:application_id;type:uuid;not null;index"`
	Link          string                  `gorm:"column:link;size:1000;not null"`
	Description   *string                 `gorm:"column:description"`
	Status        enums.DeliverableStatus `gorm:"column:status;type:deliverable_status;not null;default:'pending'"`
	Feedback      *string                 `gorm:"column:feedback"`
	SubmittedAt   time.Time               `gorm:"column:submitted_at;autoCreateTime"`
	ReviewedAt    *time.Time              `gorm:"column:reviewed_at"`
}
