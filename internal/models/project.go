package models

import "time"

type Project struct {
	ID              string     `json:"projectId" bson:"_id,omitempty"`
	TeamID          string     `json:"teamId" bson:"teamId"`
	Code            string     `json:"code" bson:"code"` // unique per team
	Name            string     `json:"name" bson:"name"`
	Price           int64      `json:"-" bson:"price"`
	StartDate       *time.Time `json:"-" bson:"startDate,omitempty"`
	EndDate         *time.Time `json:"-" bson:"endDate,omitempty"`
	CreatedByUserID string     `json:"createdByUserId" bson:"createdByUserId"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ProjectView is the wire shape: price as a digits string, dates as YYYY-MM-DD.
type ProjectView struct {
	ProjectID       string    `json:"projectId"`
	TeamID          string    `json:"teamId"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	StartDate       string    `json:"startDate,omitempty"`
	EndDate         string    `json:"endDate,omitempty"`
	CreatedByUserID string    `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateProjectRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Price     string `json:"price"`     // digits string
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

type UpdateProjectRequest struct {
	Code      *string `json:"code"`
	Name      *string `json:"name"`
	Price     *string `json:"price"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}
