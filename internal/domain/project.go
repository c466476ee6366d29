package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusOnHold     ProjectStatus = "OnHold"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

// IsValid reports whether s is a known status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is a work container. TotalWorkingTime is an aggregate counter in
// seconds, derived from the work logs referencing this project. It is
// maintained exclusively by the work-log aggregator via $inc updates and is
// never accepted from a client.
type Project struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string        `bson:"title" json:"title"`
	Status           ProjectStatus `bson:"status" json:"status"`
	CompanyID        string        `bson:"company_id,omitempty" json:"company_id,omitempty"`
	HourlyPay        *int          `bson:"hourly_pay,omitempty" json:"hourly_pay,omitempty"`
	TotalWorkingTime int64         `bson:"total_working_time" json:"total_working_time"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}
