package models

import "time"

// WeeklyReport is one user's status report for one Monday-aligned week in one
// team. (teamId, userId, weekStart) is unique.
type WeeklyReport struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TeamID    string    `json:"teamId" bson:"teamId"`
	UserID    string    `json:"userId" bson:"userId"`
	WeekStart time.Time `json:"-" bson:"weekStart"`
	ThisWeek  string    `json:"thisWeek" bson:"thisWeek"`
	NextWeek  string    `json:"nextWeek" bson:"nextWeek"`
	Issue     string    `json:"issue,omitempty" bson:"issue,omitempty"`
	Solution  string    `json:"solution,omitempty" bson:"solution,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type WeeklyReportView struct {
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId"`
	WeekStart string    `json:"weekStart"` // YYYY-MM-DD, always a Monday
	ThisWeek  string    `json:"thisWeek"`
	NextWeek  string    `json:"nextWeek"`
	Issue     string    `json:"issue,omitempty"`
	Solution  string    `json:"solution,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpsertWeeklyRequest struct {
	TeamID    string `json:"teamId" binding:"required"`
	WeekStart string `json:"weekStart" binding:"required"` // YYYY-MM-DD
	ThisWeek  string `json:"thisWeek"`
	NextWeek  string `json:"nextWeek"`
	Issue     string `json:"issue"`
	Solution  string `json:"solution"`
}

type WeeklyIndexResponse struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Weeks     []string `json:"weeks"`
}
