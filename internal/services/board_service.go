package services

import (
	"context"
	"errors"
	"strings"

	"teamboard-be/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BoardStore interface {
	Create(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, boardID string) (*models.Board, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Board, error)
	UpdateName(ctx context.Context, boardID, name string) (*models.Board, error)
	Delete(ctx context.Context, boardID string) error
}

type columnLister interface {
	Create(ctx context.Context, column *models.Column) error
	ListByBoard(ctx context.Context, boardID string) ([]models.Column, error)
	DeleteByBoard(ctx context.Context, boardID string) error
}

type cardLister interface {
	ListByBoard(ctx context.Context, boardID string) ([]models.Card, error)
	DeleteByBoard(ctx context.Context, boardID string) error
}

type BoardService struct {
	boards  BoardStore
	columns columnLister
	cards   cardLister
	tx      Transactor
}

func NewBoardService(boards BoardStore, columns columnLister, cards cardLister, tx Transactor) *BoardService {
	return &BoardService{boards: boards, columns: columns, cards: cards, tx: tx}
}

func (s *BoardService) Get(ctx context.Context, boardID string) (*models.Board, error) {
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return board, nil
}

func (s *BoardService) ListByTeam(ctx context.Context, teamID string) ([]models.Board, error) {
	return s.boards.ListByTeam(ctx, teamID)
}

// Create makes the board together with its three default columns in one
// transaction.
func (s *BoardService) Create(ctx context.Context, userID, teamID, name string) (*models.Board, error) {
	board := &models.Board{
		TeamID:          teamID,
		Name:            strings.TrimSpace(name),
		CreatedByUserID: userID,
	}

	defaults := []struct {
		name   string
		status string
	}{
		{"TO DO", models.ColumnStatusTodo},
		{"IN PROGRESS", models.ColumnStatusInProgress},
		{"DONE", models.ColumnStatusDone},
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.boards.Create(ctx, board); err != nil {
			return err
		}
		for i, d := range defaults {
			column := &models.Column{
				BoardID:         board.ID,
				Name:            d.name,
				Status:          d.status,
				Rank:            i + 1,
				CreatedByUserID: userID,
			}
			if err := s.columns.Create(ctx, column); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Rename(ctx context.Context, boardID, name string) (*models.Board, error) {
	updated, err := s.boards.UpdateName(ctx, boardID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the board with all of its columns and cards.
func (s *BoardService) Delete(ctx context.Context, boardID string) error {
	if _, err := s.Get(ctx, boardID); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.cards.DeleteByBoard(ctx, boardID); err != nil {
			return err
		}
		if err := s.columns.DeleteByBoard(ctx, boardID); err != nil {
			return err
		}
		return s.boards.Delete(ctx, boardID)
	})
}

// Detail assembles the normalized board payload: columns in rank order,
// cards keyed by id, per-column card id lists in rank order.
func (s *BoardService) Detail(ctx context.Context, boardID string) (*models.BoardDetailResponse, error) {
	board, err := s.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := s.columns.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	cardsByID := make(map[string]models.Card, len(cards))
	cardIDs := make(map[string][]string, len(columns))
	for _, col := range columns {
		cardIDs[col.ID] = []string{}
	}
	for _, c := range cards {
		cardsByID[c.ID] = c
		cardIDs[c.ColumnID] = append(cardIDs[c.ColumnID], c.ID)
	}

	return &models.BoardDetailResponse{
		Board:             board,
		Columns:           columns,
		CardsByID:         cardsByID,
		CardIDsByColumnID: cardIDs,
	}, nil
}
