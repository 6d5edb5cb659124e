package handlers

import (
	"net/http"

	"teamboard-be/internal/models"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
)

type ColumnHandler struct {
	access  *services.AccessService
	columns *services.ColumnService
	hub     *services.Hub
}

func NewColumnHandler(access *services.AccessService, columns *services.ColumnService, hub *services.Hub) *ColumnHandler {
	return &ColumnHandler{access: access, columns: columns, hub: hub}
}

// Create appends a column at the end of the board.
// @Summary Create a column
// @Tags columns
// @Accept json
// @Produce json
// @Param request body models.CreateColumnRequest true "Column"
// @Success 201 {object} models.Column
// @Failure 409 {object} models.ErrorResponse
// @Router /columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	var req models.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Status == "" {
		req.Status = models.ColumnStatusCustom
	}

	ctx := c.Request.Context()
	userID := requesterID(c)

	if err := h.access.RequireBoardAccess(ctx, userID, req.BoardID); err != nil {
		respondError(c, err)
		return
	}

	column, err := h.columns.Create(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventColumnCreated,
		BoardID: column.BoardID,
		Data:    column,
		User:    userID,
	})
	c.JSON(http.StatusCreated, column)
}

// Update patches the column name or status.
// PATCH /api/columns/:columnId
func (h *ColumnHandler) Update(c *gin.Context) {
	var req models.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	columnID := c.Param("columnId")
	userID := requesterID(c)

	column, err := h.columns.Get(ctx, columnID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, column.BoardID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.columns.Update(ctx, columnID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventColumnUpdated,
		BoardID: updated.BoardID,
		Data:    updated,
		User:    userID,
	})
	c.JSON(http.StatusOK, updated)
}

// Delete removes the column and its cards, closing the rank gap.
// DELETE /api/columns/:columnId
func (h *ColumnHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	columnID := c.Param("columnId")
	userID := requesterID(c)

	column, err := h.columns.Get(ctx, columnID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, column.BoardID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.columns.Delete(ctx, columnID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventColumnDeleted,
		BoardID: column.BoardID,
		Data:    gin.H{"columnId": columnID},
		User:    userID,
	})
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// Move reorders the column within its board.
// @Summary Move a column to an index
// @Tags columns
// @Accept json
// @Produce json
// @Param columnId path string true "Column id"
// @Param request body models.MoveColumnRequest true "Target index"
// @Success 200 {object} models.OkResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /columns/{columnId}/move [patch]
func (h *ColumnHandler) Move(c *gin.Context) {
	var req models.MoveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	columnID := c.Param("columnId")
	userID := requesterID(c)

	column, err := h.columns.Get(ctx, columnID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, column.BoardID); err != nil {
		respondError(c, err)
		return
	}

	moved, err := h.columns.Move(ctx, columnID, *req.ToIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventColumnMoved,
		BoardID: moved.BoardID,
		Data:    gin.H{"columnId": columnID, "toIndex": *req.ToIndex},
		User:    userID,
	})
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}
