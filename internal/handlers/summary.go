package handlers

import (
	"net/http"
	"sort"
	"time"

	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
)

// deadlineWindow is how far ahead the summary looks for upcoming due dates.
const deadlineWindow = 7 * 24 * time.Hour

type SummaryHandler struct {
	access      *services.AccessService
	boardRepo   *repository.BoardRepository
	columnRepo  *repository.ColumnRepository
	cardRepo    *repository.CardRepository
	projectRepo *repository.ProjectRepository
	teamRepo    *repository.TeamRepository
}

func NewSummaryHandler(
	access *services.AccessService,
	boardRepo *repository.BoardRepository,
	columnRepo *repository.ColumnRepository,
	cardRepo *repository.CardRepository,
	projectRepo *repository.ProjectRepository,
	teamRepo *repository.TeamRepository,
) *SummaryHandler {
	return &SummaryHandler{
		access:      access,
		boardRepo:   boardRepo,
		columnRepo:  columnRepo,
		cardRepo:    cardRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

type summaryKPIs struct {
	Projects  int `json:"projects"`
	Boards    int `json:"boards"`
	Cards     int `json:"cards"`
	DoneCards int `json:"doneCards"`
	Members   int `json:"members"`
}

type memberWorkload struct {
	UserID    string `json:"userId"`
	OpenCards int    `json:"openCards"`
}

type summaryResponse struct {
	KPIs      summaryKPIs          `json:"kpis"`
	Projects  []models.ProjectView `json:"projects"`
	MyTasks   []models.Card        `json:"myTasks"`
	Deadlines []models.Card        `json:"deadlines"`
	Workload  []memberWorkload     `json:"workload"`
}

// Get rolls the team's activity up into the home dashboard payload.
// @Summary Get the team summary dashboard
// @Description Returns KPIs, project summaries, the requester's open cards, upcoming deadlines, and per-member workload
// @Tags summary
// @Produce json
// @Param teamId path string true "Team id"
// @Success 200 {object} summaryResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /summary/{teamId} [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	teamID := c.Param("teamId")
	userID := requesterID(c)

	if err := h.access.RequireTeamMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	boardIDs, err := h.boardRepo.ListByTeamIDs(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	cards, err := h.cardRepo.ListByBoardIDs(ctx, boardIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	projects, err := h.projectRepo.ListByTeam(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	members, err := h.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	// A card counts as done when its column's status is DONE.
	doneColumns := map[string]bool{}
	for _, boardID := range boardIDs {
		columns, err := h.columnRepo.ListByBoard(ctx, boardID)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, col := range columns {
			if col.Status == models.ColumnStatusDone {
				doneColumns[col.ID] = true
			}
		}
	}

	now := time.Now().UTC()
	horizon := now.Add(deadlineWindow)

	kpis := summaryKPIs{
		Projects: len(projects),
		Boards:   len(boardIDs),
		Cards:    len(cards),
		Members:  len(members),
	}
	myTasks := []models.Card{}
	deadlines := []models.Card{}
	openByUser := map[string]int{}

	for _, card := range cards {
		done := doneColumns[card.ColumnID]
		if done {
			kpis.DoneCards++
			continue
		}
		openByUser[card.CreatedByUserID]++
		if card.CreatedByUserID == userID {
			myTasks = append(myTasks, card)
		}
		if card.DueDate != nil && card.DueDate.Before(horizon) {
			deadlines = append(deadlines, card)
		}
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(*deadlines[j].DueDate)
	})

	workload := make([]memberWorkload, 0, len(members))
	for _, m := range members {
		workload = append(workload, memberWorkload{
			UserID:    m.UserID,
			OpenCards: openByUser[m.UserID],
		})
	}
	sort.Slice(workload, func(i, j int) bool {
		return workload[i].OpenCards > workload[j].OpenCards
	})

	views := make([]models.ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, projectView(&projects[i]))
	}

	c.JSON(http.StatusOK, summaryResponse{
		KPIs:      kpis,
		Projects:  views,
		MyTasks:   myTasks,
		Deadlines: deadlines,
		Workload:  workload,
	})
}
