package handlers

import (
	"net/http"
	"strings"

	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const joinCodeLength = 8

// AdminHandler owns the management surface: user accounts and teams. Every
// route requires the global ADMIN role.
type AdminHandler struct {
	access   *services.AccessService
	userRepo *repository.UserRepository
	teamRepo *repository.TeamRepository
}

func NewAdminHandler(access *services.AccessService, userRepo *repository.UserRepository, teamRepo *repository.TeamRepository) *AdminHandler {
	return &AdminHandler{access: access, userRepo: userRepo, teamRepo: teamRepo}
}

// RequireAdmin is the route-group middleware for /admin.
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.access.RequireAdmin(c.Request.Context(), requesterID(c)); err != nil {
			status, body := errorBody(err)
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Next()
	}
}

// ListUsers returns every account.
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser provisions an account on behalf of someone else.
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		LoginID:    req.ID,
		Password:   hashedPassword,
		Name:       req.Name,
		Department: req.Department,
		GlobalRole: models.RoleUser,
		IsActive:   true,
	}
	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, services.ErrLoginIDTaken)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// SetUserRole switches an account between USER and ADMIN.
// PATCH /api/admin/users/:userId/role
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required,oneof=ADMIN USER"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userRepo.SetGlobalRole(c.Request.Context(), c.Param("userId"), req.Role); err != nil {
		respondError(c, services.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// ResetUserPassword replaces an account's password.
// POST /api/admin/users/:userId/password
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.userRepo.SetPassword(c.Request.Context(), c.Param("userId"), hashedPassword); err != nil {
		respondError(c, services.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// DeactivateUser soft-deletes an account. Its memberships and authored
// cards remain.
// DELETE /api/admin/users/:userId
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	if err := h.userRepo.Deactivate(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, services.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// ListTeams returns every team including its join code.
// GET /api/admin/teams
func (h *AdminHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// CreateTeam makes a team with a fresh join code. On the rare join-code
// collision the insert is retried with a new code.
// POST /api/admin/teams
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	team := &models.Team{Name: strings.TrimSpace(req.Name)}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		team.JoinCode = utils.RandomJoinCode(joinCodeLength)
		err = h.teamRepo.Create(ctx, team)
		if err == nil {
			c.JSON(http.StatusCreated, team)
			return
		}
		if !mongo.IsDuplicateKeyError(err) {
			respondError(c, err)
			return
		}
	}
	// Three straight join-code collisions; surface it as a server error.
	respondError(c, err)
}

// DeleteTeam removes the team and its memberships. Boards under the team
// are left for a maintenance sweep.
// DELETE /api/admin/teams/:teamId
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	ctx := c.Request.Context()
	teamID := c.Param("teamId")

	if _, err := h.teamRepo.FindByID(ctx, teamID); err != nil {
		respondError(c, services.ErrTeamNotFound)
		return
	}

	members, err := h.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, m := range members {
		if err := h.teamRepo.RemoveMember(ctx, teamID, m.UserID); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := h.teamRepo.Delete(ctx, teamID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// AddTeamMember attaches a user to a team, optionally as LEADER.
// POST /api/admin/teams/:teamId/members
func (h *AdminHandler) AddTeamMember(c *gin.Context) {
	var req models.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Role == "" {
		req.Role = models.TeamRoleMember
	}
	if req.Role != models.TeamRoleLeader && req.Role != models.TeamRoleMember {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "role must be LEADER or MEMBER",
		})
		return
	}

	ctx := c.Request.Context()
	teamID := c.Param("teamId")

	if _, err := h.teamRepo.FindByID(ctx, teamID); err != nil {
		respondError(c, services.ErrTeamNotFound)
		return
	}
	if _, err := h.userRepo.FindByID(ctx, req.UserID); err != nil {
		respondError(c, services.ErrUserNotFound)
		return
	}

	member := &models.TeamMember{TeamID: teamID, UserID: req.UserID, Role: req.Role}
	if err := h.teamRepo.AddMember(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, services.ErrAlreadyJoined)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// RemoveTeamMember detaches a user from a team.
// DELETE /api/admin/teams/:teamId/members/:userId
func (h *AdminHandler) RemoveTeamMember(c *gin.Context) {
	if err := h.teamRepo.RemoveMember(c.Request.Context(), c.Param("teamId"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}
