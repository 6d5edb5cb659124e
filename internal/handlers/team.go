package handlers

import (
	"net/http"
	"strings"

	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamHandler struct {
	access   *services.AccessService
	teamRepo *repository.TeamRepository
}

func NewTeamHandler(access *services.AccessService, teamRepo *repository.TeamRepository) *TeamHandler {
	return &TeamHandler{access: access, teamRepo: teamRepo}
}

// Join adds the requester to the team matching the join code.
// @Summary Join a team by join code
// @Tags teams
// @Accept json
// @Produce json
// @Param request body models.JoinTeamRequest true "Join code"
// @Success 200 {object} models.JoinTeamResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /teams/join [post]
func (h *TeamHandler) Join(c *gin.Context) {
	var req models.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := requesterID(c)

	if _, err := h.access.ActiveUser(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.JoinCode))
	team, err := h.teamRepo.FindByJoinCode(ctx, code)
	if err != nil {
		respondError(c, services.ErrTeamNotFound)
		return
	}

	member := &models.TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Role:   models.TeamRoleMember,
	}
	if err := h.teamRepo.AddMember(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, services.ErrAlreadyJoined)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.JoinTeamResponse{Ok: true, TeamID: team.ID})
}

// Mine lists the teams the requester belongs to.
// GET /api/teams/mine
func (h *TeamHandler) Mine(c *gin.Context) {
	ctx := c.Request.Context()
	userID := requesterID(c)

	if _, err := h.access.ActiveUser(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	memberships, err := h.teamRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	teams := []models.Team{}
	for _, m := range memberships {
		team, err := h.teamRepo.FindByID(ctx, m.TeamID)
		if err != nil {
			continue // membership pointing at a deleted team
		}
		team.JoinCode = ""
		teams = append(teams, *team)
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}
