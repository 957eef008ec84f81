// Package staffrepo answers staff role questions from the staff_users
// table. User accounts are provisioned out of band; this service only reads
// them.
package staffrepo

import (
	"github.com/google/uuid"
)

// RoleManager marks users allowed to manage orders.
const RoleManager = "manager"

// StaffUserDTO represents the database structure for staff users.
type StaffUserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Role   string `gorm:"type:varchar(16);index"`
	Active bool   `gorm:"index"`
}

// TableName specifies the database table name for staff users.
func (StaffUserDTO) TableName() string {
	return "staff_users"
}
