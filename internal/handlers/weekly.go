package handlers

import (
	"net/http"
	"time"

	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// defaultIndexWeeks is how far back the weekly index reaches when the client
// does not pass an explicit range.
const defaultIndexWeeks = 26

type WeeklyHandler struct {
	access     *services.AccessService
	weeklyRepo *repository.WeeklyRepository
}

func NewWeeklyHandler(access *services.AccessService, weeklyRepo *repository.WeeklyRepository) *WeeklyHandler {
	return &WeeklyHandler{access: access, weeklyRepo: weeklyRepo}
}

func weeklyView(r *models.WeeklyReport) models.WeeklyReportView {
	return models.WeeklyReportView{
		TeamID:    r.TeamID,
		UserID:    r.UserID,
		WeekStart: utils.ToYmd(r.WeekStart),
		ThisWeek:  r.ThisWeek,
		NextWeek:  r.NextWeek,
		Issue:     r.Issue,
		Solution:  r.Solution,
		UpdatedAt: r.UpdatedAt,
	}
}

// Index lists the Monday week-starts the requester has reports for.
// GET /api/weekly/me/index?teamId=&from=&to=
func (h *WeeklyHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	userID := requesterID(c)
	teamID := c.Query("teamId")

	if teamID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "teamId is required",
		})
		return
	}
	if err := h.access.RequireTeamMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	// Default range: the last half year up to and including the current week.
	thisWeek := utils.WeekStart(time.Now().UTC())
	from := thisWeek.AddDate(0, 0, -7*defaultIndexWeeks)
	toExclusive := thisWeek.AddDate(0, 0, 7)

	if s := c.Query("from"); s != "" {
		t, err := utils.ParseYmd(s)
		if err != nil {
			respondError(c, err)
			return
		}
		from = utils.WeekStart(t)
	}
	if s := c.Query("to"); s != "" {
		t, err := utils.ParseYmd(s)
		if err != nil {
			respondError(c, err)
			return
		}
		toExclusive = utils.WeekStart(t).AddDate(0, 0, 7)
	}

	weekStarts, err := h.weeklyRepo.ListWeekStarts(ctx, teamID, userID, from, toExclusive)
	if err != nil {
		respondError(c, err)
		return
	}

	weeks := make([]string, 0, len(weekStarts))
	for _, w := range weekStarts {
		weeks = append(weeks, utils.ToYmd(w))
	}

	c.JSON(http.StatusOK, models.WeeklyIndexResponse{
		StartDate: utils.ToYmd(from),
		EndDate:   utils.ToYmd(toExclusive.AddDate(0, 0, -7)),
		Weeks:     weeks,
	})
}

// Get returns the requester's report for one week.
// GET /api/weekly/me?teamId=&weekStart=
func (h *WeeklyHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := requesterID(c)
	teamID := c.Query("teamId")

	if teamID == "" || c.Query("weekStart") == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "teamId and weekStart are required",
		})
		return
	}
	if err := h.access.RequireTeamMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	week, err := utils.ParseYmd(c.Query("weekStart"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.weeklyRepo.Find(ctx, teamID, userID, utils.WeekStart(week))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    "REPORT_NOT_FOUND",
			Message: "no report for this week",
		})
		return
	}
	c.JSON(http.StatusOK, weeklyView(report))
}

// Upsert creates or replaces the requester's report for the week. Any date
// inside the week is accepted and aligned to its Monday.
// @Summary Upsert a weekly report
// @Tags weekly
// @Accept json
// @Produce json
// @Param request body models.UpsertWeeklyRequest true "Report"
// @Success 200 {object} models.WeeklyReportView
// @Failure 403 {object} models.ErrorResponse
// @Router /weekly [post]
func (h *WeeklyHandler) Upsert(c *gin.Context) {
	var req models.UpsertWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := requesterID(c)

	if err := h.access.RequireTeamMember(ctx, userID, req.TeamID); err != nil {
		respondError(c, err)
		return
	}

	week, err := utils.ParseYmd(req.WeekStart)
	if err != nil {
		respondError(c, err)
		return
	}

	report := &models.WeeklyReport{
		TeamID:    req.TeamID,
		UserID:    userID,
		WeekStart: utils.WeekStart(week),
		ThisWeek:  utils.SanitizeText(req.ThisWeek),
		NextWeek:  utils.SanitizeText(req.NextWeek),
		Issue:     utils.SanitizeText(req.Issue),
		Solution:  utils.SanitizeText(req.Solution),
	}

	saved, err := h.weeklyRepo.Upsert(ctx, report)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeklyView(saved))
}
