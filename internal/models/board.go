package models

import "time"

// Column status labels. These are descriptive metadata for the client, not
// enforced transition states.
const (
	ColumnStatusTodo       = "TODO"
	ColumnStatusInProgress = "IN_PROGRESS"
	ColumnStatusDone       = "DONE"
	ColumnStatusCustom     = "CUSTOM"
)

type Board struct {
	ID              string    `json:"boardId" bson:"_id,omitempty"`
	TeamID          string    `json:"teamId" bson:"teamId"`
	Name            string    `json:"name" bson:"name"`
	CreatedByUserID string    `json:"createdByUserId" bson:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Column is an ordered container of cards. Rank is dense per board,
// starting at 1; (boardId, rank) is unique.
type Column struct {
	ID              string    `json:"columnId" bson:"_id,omitempty"`
	BoardID         string    `json:"boardId" bson:"boardId"`
	Name            string    `json:"name" bson:"name"`
	Status          string    `json:"status" bson:"status"`
	Rank            int       `json:"order" bson:"rank"`
	CreatedByUserID string    `json:"createdByUserId,omitempty" bson:"createdByUserId,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Card is an ordered item within a column. Rank is dense per column,
// starting at 1; (columnId, rank) is unique. BoardID always matches the
// owning column's board.
type Card struct {
	ID              string     `json:"cardId" bson:"_id,omitempty"`
	BoardID         string     `json:"boardId" bson:"boardId"`
	ColumnID        string     `json:"columnId" bson:"columnId"`
	Title           string     `json:"title" bson:"title"`
	Content         string     `json:"content,omitempty" bson:"content,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	ProjectID       string     `json:"projectId,omitempty" bson:"projectId,omitempty"`
	Rank            int        `json:"order" bson:"rank"`
	CreatedByUserID string     `json:"createdByUserId" bson:"createdByUserId"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

// BoardDetailResponse is the normalized board payload: columns in rank order,
// cards keyed by id, and per-column card id lists in rank order.
type BoardDetailResponse struct {
	Board             *Board              `json:"board"`
	Columns           []Column            `json:"columns"`
	CardsByID         map[string]Card     `json:"cardsById"`
	CardIDsByColumnID map[string][]string `json:"cardIdsByColumnId"`
}

type CreateColumnRequest struct {
	BoardID string `json:"boardId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Status  string `json:"status"`
}

type UpdateColumnRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type MoveColumnRequest struct {
	ToIndex *int `json:"toIndex" binding:"required"`
}

type CreateCardRequest struct {
	ColumnID  string `json:"columnId" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	DueDate   string `json:"dueDate"` // YYYY-MM-DD, optional
	ProjectID string `json:"projectId"`
}

type UpdateCardRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	DueDate   *string `json:"dueDate"` // empty string clears the due date
	ProjectID *string `json:"projectId"`
}

type MoveCardRequest struct {
	ToColumnID string `json:"toColumnId" binding:"required"`
	ToIndex    *int   `json:"toIndex" binding:"required"`
}
