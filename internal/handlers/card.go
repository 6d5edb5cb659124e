package handlers

import (
	"net/http"

	"teamboard-be/internal/models"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	access *services.AccessService
	cards  *services.CardService
	hub    *services.Hub
}

func NewCardHandler(access *services.AccessService, cards *services.CardService, hub *services.Hub) *CardHandler {
	return &CardHandler{access: access, cards: cards, hub: hub}
}

// Create appends a card at the end of its column.
// @Summary Create a card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body models.CreateCardRequest true "Card"
// @Success 201 {object} models.Card
// @Failure 404 {object} models.ErrorResponse
// @Router /card [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := requesterID(c)

	column, err := h.cards.Column(ctx, req.ColumnID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, column.BoardID); err != nil {
		respondError(c, err)
		return
	}

	card, err := h.cards.Create(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventCardCreated,
		BoardID: card.BoardID,
		Data:    card,
		User:    userID,
	})
	c.JSON(http.StatusCreated, card)
}

// Update patches the card's own fields (title, content, due date, project).
// PATCH /api/card/:cardId
func (h *CardHandler) Update(c *gin.Context) {
	var req models.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	cardID := c.Param("cardId")
	userID := requesterID(c)

	card, err := h.cards.Get(ctx, cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, card.BoardID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.cards.Update(ctx, cardID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventCardUpdated,
		BoardID: updated.BoardID,
		Data:    updated,
		User:    userID,
	})
	c.JSON(http.StatusOK, updated)
}

// Delete removes the card and compacts the column's ranks.
// DELETE /api/card/:cardId
func (h *CardHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	cardID := c.Param("cardId")
	userID := requesterID(c)

	card, err := h.cards.Get(ctx, cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, card.BoardID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.cards.Delete(ctx, cardID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventCardDeleted,
		BoardID: card.BoardID,
		Data:    gin.H{"cardId": cardID, "columnId": card.ColumnID},
		User:    userID,
	})
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// Move relocates the card within its column or to another column on the
// same board.
// @Summary Move a card to a column and index
// @Tags cards
// @Accept json
// @Produce json
// @Param cardId path string true "Card id"
// @Param request body models.MoveCardRequest true "Target column and index"
// @Success 200 {object} models.OkResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /card/{cardId}/move [patch]
func (h *CardHandler) Move(c *gin.Context) {
	var req models.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	cardID := c.Param("cardId")
	userID := requesterID(c)

	card, err := h.cards.Get(ctx, cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.access.RequireBoardAccess(ctx, userID, card.BoardID); err != nil {
		respondError(c, err)
		return
	}

	moved, err := h.cards.Move(ctx, cardID, req.ToColumnID, *req.ToIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(services.BoardEvent{
		Type:    services.EventCardMoved,
		BoardID: moved.BoardID,
		Data:    gin.H{"cardId": cardID, "toColumnId": moved.ColumnID, "toIndex": *req.ToIndex},
		User:    userID,
	})
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}
