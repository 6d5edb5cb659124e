package models

import "time"

// Team member roles within a team.
const (
	TeamRoleLeader = "LEADER"
	TeamRoleMember = "MEMBER"
)

type Team struct {
	ID        string    `json:"teamId" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	JoinCode  string    `json:"joinCode,omitempty" bson:"joinCode"` // unique, human-enterable
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type TeamMember struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	TeamID   string    `json:"teamId" bson:"teamId"`
	UserID   string    `json:"userId" bson:"userId"`
	Role     string    `json:"role" bson:"role"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
}

type JoinTeamRequest struct {
	JoinCode string `json:"joinCode" binding:"required"`
}

type JoinTeamResponse struct {
	Ok     bool   `json:"ok"`
	TeamID string `json:"teamId"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddTeamMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}
