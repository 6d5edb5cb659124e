package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectHandler struct {
	access      *services.AccessService
	projectRepo *repository.ProjectRepository
}

func NewProjectHandler(access *services.AccessService, projectRepo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{access: access, projectRepo: projectRepo}
}

// parsePrice accepts a digits string ("1200000") and rejects anything else.
func parsePrice(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	price, err := strconv.ParseInt(s, 10, 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

func projectView(p *models.Project) models.ProjectView {
	view := models.ProjectView{
		ProjectID:       p.ID,
		TeamID:          p.TeamID,
		Code:            p.Code,
		Name:            p.Name,
		Price:           strconv.FormatInt(p.Price, 10),
		CreatedByUserID: p.CreatedByUserID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.StartDate != nil {
		view.StartDate = utils.ToYmd(*p.StartDate)
	}
	if p.EndDate != nil {
		view.EndDate = utils.ToYmd(*p.EndDate)
	}
	return view
}

// List returns the team's projects.
// GET /api/teams/:teamId/projects
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	teamID := c.Param("teamId")

	if err := h.access.RequireTeamMember(ctx, requesterID(c), teamID); err != nil {
		respondError(c, err)
		return
	}

	projects, err := h.projectRepo.ListByTeam(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]models.ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, projectView(&projects[i]))
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// Create makes a project. The code is unique within the team.
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param teamId path string true "Team id"
// @Param request body models.CreateProjectRequest true "Project"
// @Success 201 {object} models.ProjectView
// @Failure 409 {object} models.ErrorResponse
// @Router /teams/{teamId}/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	teamID := c.Param("teamId")
	userID := requesterID(c)

	if err := h.access.RequireTeamMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	price, ok := parsePrice(req.Price)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_PRICE",
			Message: "price must be a digits string",
		})
		return
	}

	project := &models.Project{
		TeamID:          teamID,
		Code:            strings.TrimSpace(req.Code),
		Name:            strings.TrimSpace(req.Name),
		Price:           price,
		CreatedByUserID: userID,
	}

	if req.StartDate != "" {
		start, err := utils.ParseYmd(req.StartDate)
		if err != nil {
			respondError(c, err)
			return
		}
		project.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := utils.ParseYmd(req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}
		project.EndDate = &end
	}

	if err := h.projectRepo.Create(ctx, project); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, services.ErrCodeTaken)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectView(project))
}

// Get returns one project.
// GET /api/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := h.projectRepo.FindByID(ctx, c.Param("projectId"))
	if err != nil {
		respondError(c, services.ErrProjectNotFound)
		return
	}
	if err := h.access.RequireTeamMember(ctx, requesterID(c), project.TeamID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectView(project))
}

// Update patches project fields.
// PATCH /api/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	projectID := c.Param("projectId")
	userID := requesterID(c)

	project, err := h.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		respondError(c, services.ErrProjectNotFound)
		return
	}
	if err := h.access.RequireTeamMember(ctx, userID, project.TeamID); err != nil {
		respondError(c, err)
		return
	}

	updates := bson.M{}
	if req.Code != nil {
		updates["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		price, ok := parsePrice(*req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Code:    "INVALID_PRICE",
				Message: "price must be a digits string",
			})
			return
		}
		updates["price"] = price
	}
	if req.StartDate != nil {
		if *req.StartDate == "" {
			updates["startDate"] = nil
		} else {
			start, err := utils.ParseYmd(*req.StartDate)
			if err != nil {
				respondError(c, err)
				return
			}
			updates["startDate"] = start
		}
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			updates["endDate"] = nil
		} else {
			end, err := utils.ParseYmd(*req.EndDate)
			if err != nil {
				respondError(c, err)
				return
			}
			updates["endDate"] = end
		}
	}
	if len(updates) == 0 {
		respondError(c, services.ErrNoFields)
		return
	}

	updated, err := h.projectRepo.Update(ctx, projectID, updates)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, services.ErrCodeTaken)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectView(updated))
}

// Delete removes the project. Cards keep their projectId; the client treats
// a dangling reference as unlinked.
// DELETE /api/projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	projectID := c.Param("projectId")

	project, err := h.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		respondError(c, services.ErrProjectNotFound)
		return
	}
	if err := h.access.RequireTeamMember(ctx, requesterID(c), project.TeamID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.projectRepo.Delete(ctx, projectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}
