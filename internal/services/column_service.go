package services

import (
	"context"
	"errors"
	"strings"

	"teamboard-be/internal/models"
	"teamboard-be/internal/ranking"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ColumnStore embeds the ranking store so column reordering and CRUD share
// one repository and one transaction context.
type ColumnStore interface {
	ranking.Store
	Create(ctx context.Context, column *models.Column) error
	FindByID(ctx context.Context, columnID string) (*models.Column, error)
	CountByBoard(ctx context.Context, boardID string) (int64, error)
	Update(ctx context.Context, columnID string, updates bson.M) (*models.Column, error)
	Delete(ctx context.Context, columnID string) error
}

type cardCascader interface {
	DeleteByColumn(ctx context.Context, columnID string) error
}

type ColumnService struct {
	columns ColumnStore
	boards  boardFinder
	cards   cardCascader
	ranker  *ranking.Ranker
	tx      Transactor
}

func NewColumnService(columns ColumnStore, boards boardFinder, cards cardCascader, tx Transactor) *ColumnService {
	return &ColumnService{
		columns: columns,
		boards:  boards,
		cards:   cards,
		ranker:  ranking.NewRanker(columns),
		tx:      tx,
	}
}

// Get loads a column or fails with ErrColumnNotFound.
func (s *ColumnService) Get(ctx context.Context, columnID string) (*models.Column, error) {
	column, err := s.columns.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return column, nil
}

// Create appends a column at the end of the board. A duplicate name within
// the board surfaces as ErrNameTaken.
func (s *ColumnService) Create(ctx context.Context, userID string, req models.CreateColumnRequest) (*models.Column, error) {
	boardID := strings.TrimSpace(req.BoardID)
	if _, err := s.boards.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	count, err := s.columns.CountByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	column := &models.Column{
		BoardID:         boardID,
		Name:            strings.TrimSpace(req.Name),
		Status:          req.Status,
		Rank:            int(count) + ranking.BaseRank,
		CreatedByUserID: userID,
	}

	if err := s.columns.Create(ctx, column); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) Update(ctx context.Context, columnID string, req models.UpdateColumnRequest) (*models.Column, error) {
	if _, err := s.Get(ctx, columnID); err != nil {
		return nil, err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	updated, err := s.columns.Update(ctx, columnID, updates)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the column and its cards, then compacts the board's
// remaining column ranks, all in one transaction.
func (s *ColumnService) Delete(ctx context.Context, columnID string) error {
	column, err := s.Get(ctx, columnID)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.cards.DeleteByColumn(ctx, columnID); err != nil {
			return err
		}
		if err := s.columns.Delete(ctx, columnID); err != nil {
			return err
		}
		return s.ranker.Compact(ctx, column.BoardID)
	})
}

// Move reorders a column within its board. The index is clamped.
func (s *ColumnService) Move(ctx context.Context, columnID string, toIndex int) (*models.Column, error) {
	column, err := s.Get(ctx, columnID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.ranker.Move(ctx, column.BoardID, columnID, toIndex)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, columnID)
}
