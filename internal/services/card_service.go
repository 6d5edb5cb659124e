package services

import (
	"context"
	"errors"
	"strings"

	"teamboard-be/internal/models"
	"teamboard-be/internal/ranking"
	"teamboard-be/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CardStore is the persistence surface the card service needs. It embeds the
// ranking store so the same repository drives both CRUD and reordering
// within one transaction context.
type CardStore interface {
	ranking.Store
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, cardID string) (*models.Card, error)
	CountByColumn(ctx context.Context, columnID string) (int64, error)
	Update(ctx context.Context, cardID string, updates bson.M) (*models.Card, error)
	Delete(ctx context.Context, cardID string) error
}

type columnFinder interface {
	FindByID(ctx context.Context, columnID string) (*models.Column, error)
}

type projectFinder interface {
	FindByID(ctx context.Context, projectID string) (*models.Project, error)
}

// CardService owns card CRUD and delegates all rank maintenance to the
// ranker. Every multi-write path runs inside one transaction so a failure
// leaves no partial renumbering behind.
type CardService struct {
	cards    CardStore
	columns  columnFinder
	projects projectFinder
	ranker   *ranking.Ranker
	tx       Transactor
}

func NewCardService(cards CardStore, columns columnFinder, projects projectFinder, tx Transactor) *CardService {
	return &CardService{
		cards:    cards,
		columns:  columns,
		projects: projects,
		ranker:   ranking.NewRanker(cards),
		tx:       tx,
	}
}

// Column resolves the column a card operation targets, for handler-side
// access checks.
func (s *CardService) Column(ctx context.Context, columnID string) (*models.Column, error) {
	column, err := s.columns.FindByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return column, nil
}

// Get loads a card or fails with ErrCardNotFound.
func (s *CardService) Get(ctx context.Context, cardID string) (*models.Card, error) {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// Create appends a card at the end of its column (rank = sibling count + 1).
func (s *CardService) Create(ctx context.Context, userID string, req models.CreateCardRequest) (*models.Card, error) {
	column, err := s.Column(ctx, strings.TrimSpace(req.ColumnID))
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		BoardID:         column.BoardID,
		ColumnID:        column.ID,
		Title:           strings.TrimSpace(req.Title),
		Content:         utils.SanitizeText(req.Content),
		CreatedByUserID: userID,
	}

	if req.DueDate != "" {
		due, err := utils.ParseYmd(req.DueDate)
		if err != nil {
			return nil, err
		}
		card.DueDate = &due
	}

	if req.ProjectID != "" {
		if _, err := s.projects.FindByID(ctx, req.ProjectID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		card.ProjectID = req.ProjectID
	}

	count, err := s.cards.CountByColumn(ctx, column.ID)
	if err != nil {
		return nil, err
	}
	card.Rank = int(count) + ranking.BaseRank

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Update patches the card's own fields. Rank and column are only ever
// changed through Move.
func (s *CardService) Update(ctx context.Context, cardID string, req models.UpdateCardRequest) (*models.Card, error) {
	if _, err := s.Get(ctx, cardID); err != nil {
		return nil, err
	}

	updates := bson.M{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		content := utils.SanitizeText(*req.Content)
		if content == "" {
			updates["content"] = nil
		} else {
			updates["content"] = content
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["dueDate"] = nil
		} else {
			due, err := utils.ParseYmd(*req.DueDate)
			if err != nil {
				return nil, err
			}
			updates["dueDate"] = due
		}
	}
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			updates["projectId"] = nil
		} else {
			if _, err := s.projects.FindByID(ctx, *req.ProjectID); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, ErrProjectNotFound
				}
				return nil, err
			}
			updates["projectId"] = *req.ProjectID
		}
	}

	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	return s.cards.Update(ctx, cardID, updates)
}

// Delete removes the card and compacts the remaining siblings' ranks in one
// transaction.
func (s *CardService) Delete(ctx context.Context, cardID string) error {
	card, err := s.Get(ctx, cardID)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.cards.Delete(ctx, cardID); err != nil {
			return err
		}
		return s.ranker.Compact(ctx, card.ColumnID)
	})
}

// Move relocates a card within its column or to another column on the same
// board. The destination index is clamped; a destination on a different
// board is rejected before any write.
func (s *CardService) Move(ctx context.Context, cardID, toColumnID string, toIndex int) (*models.Card, error) {
	card, err := s.Get(ctx, cardID)
	if err != nil {
		return nil, err
	}

	toColumn, err := s.Column(ctx, strings.TrimSpace(toColumnID))
	if err != nil {
		return nil, err
	}

	if toColumn.BoardID != card.BoardID {
		return nil, ErrCrossBoardMove
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.ranker.MoveAcross(ctx, card.ColumnID, toColumn.ID, cardID, toIndex)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, cardID)
}
