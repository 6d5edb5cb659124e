package handlers

import (
	"net/http"

	"teamboard-be/internal/models"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	access *services.AccessService
	boards *services.BoardService
	hub    *services.Hub
}

func NewBoardHandler(access *services.AccessService, boards *services.BoardService, hub *services.Hub) *BoardHandler {
	return &BoardHandler{access: access, boards: boards, hub: hub}
}

// List returns the team's boards.
// GET /api/teams/:teamId/boards
func (h *BoardHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	teamID := c.Param("teamId")

	if err := h.access.RequireTeamMember(ctx, requesterID(c), teamID); err != nil {
		respondError(c, err)
		return
	}

	boards, err := h.boards.ListByTeam(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// Create makes a board with its three default columns.
// @Summary Create a board
// @Tags boards
// @Accept json
// @Produce json
// @Param teamId path string true "Team id"
// @Param request body models.CreateBoardRequest true "Board name"
// @Success 201 {object} models.Board
// @Failure 403 {object} models.ErrorResponse
// @Router /teams/{teamId}/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req models.CreateBoardRequest
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

	board, err := h.boards.Create(ctx, userID, teamID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// Detail returns the board with its columns and cards in rank order.
// @Summary Get board detail
// @Tags boards
// @Produce json
// @Param boardId path string true "Board id"
// @Success 200 {object} models.BoardDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /boards/{boardId} [get]
func (h *BoardHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	boardID := c.Param("boardId")

	if err := h.access.RequireBoardAccess(ctx, requesterID(c), boardID); err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.boards.Detail(ctx, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Rename updates the board name.
// PATCH /api/boards/:boardId
func (h *BoardHandler) Rename(c *gin.Context) {
	var req models.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	boardID := c.Param("boardId")
	userID := requesterID(c)

	if err := h.access.RequireBoardAccess(ctx, userID, boardID); err != nil {
		respondError(c, err)
		return
	}

	board, err := h.boards.Rename(ctx, boardID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventBoardUpdated,
		BoardID: boardID,
		Data:    board,
		User:    userID,
	})
	c.JSON(http.StatusOK, board)
}

// Delete removes the board with all of its columns and cards.
// DELETE /api/boards/:boardId
func (h *BoardHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	boardID := c.Param("boardId")

	if err := h.access.RequireBoardOwner(ctx, requesterID(c), boardID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.boards.Delete(ctx, boardID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}
