package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"teamboard-be/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeEnv is an in-memory stand-in for the mongo layer: typed stores over
// one shared state, a transactor that snapshots and rolls back on error, a
// unique (container, rank) constraint, and injectable write failures.
type fakeEnv struct {
	users    map[string]*models.User
	boards   map[string]*models.Board
	columns  map[string]*models.Column
	cards    map[string]*models.Card
	projects map[string]*models.Project
	members  map[string]*models.TeamMember // key teamID+"/"+userID

	writes int
	failAt int // fail the nth write (1-based), 0 = never
}

var errInjectedWrite = errors.New("injected write failure")

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		users:    map[string]*models.User{},
		boards:   map[string]*models.Board{},
		columns:  map[string]*models.Column{},
		cards:    map[string]*models.Card{},
		projects: map[string]*models.Project{},
		members:  map[string]*models.TeamMember{},
	}
}

func (e *fakeEnv) snapshot() *fakeEnv {
	c := newFakeEnv()
	for k, v := range e.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range e.boards {
		b := *v
		c.boards[k] = &b
	}
	for k, v := range e.columns {
		col := *v
		c.columns[k] = &col
	}
	for k, v := range e.cards {
		card := *v
		c.cards[k] = &card
	}
	for k, v := range e.projects {
		p := *v
		c.projects[k] = &p
	}
	for k, v := range e.members {
		m := *v
		c.members[k] = &m
	}
	return c
}

func (e *fakeEnv) restore(snap *fakeEnv) {
	e.users = snap.users
	e.boards = snap.boards
	e.columns = snap.columns
	e.cards = snap.cards
	e.projects = snap.projects
	e.members = snap.members
}

func (e *fakeEnv) write() error {
	e.writes++
	if e.failAt > 0 && e.writes >= e.failAt {
		return errInjectedWrite
	}
	return nil
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

// transactor

type fakeTransactor struct{ env *fakeEnv }

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.env.snapshot()
	if err := fn(ctx); err != nil {
		t.env.restore(snap)
		return err
	}
	return nil
}

// card store

type fakeCardStore struct{ env *fakeEnv }

func (s *fakeCardStore) Create(_ context.Context, card *models.Card) error {
	if err := s.env.write(); err != nil {
		return err
	}
	if card.ID == "" {
		card.ID = fmt.Sprintf("card-%d", len(s.env.cards)+1)
	}
	for _, c := range s.env.cards {
		if c.ColumnID == card.ColumnID && c.Rank == card.Rank {
			return duplicateKeyError()
		}
	}
	cp := *card
	s.env.cards[card.ID] = &cp
	return nil
}

func (s *fakeCardStore) FindByID(_ context.Context, cardID string) (*models.Card, error) {
	card, ok := s.env.cards[cardID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *card
	return &cp, nil
}

func (s *fakeCardStore) CountByColumn(_ context.Context, columnID string) (int64, error) {
	var n int64
	for _, c := range s.env.cards {
		if c.ColumnID == columnID {
			n++
		}
	}
	return n, nil
}

func (s *fakeCardStore) Update(_ context.Context, cardID string, updates bson.M) (*models.Card, error) {
	if err := s.env.write(); err != nil {
		return nil, err
	}
	card, ok := s.env.cards[cardID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for k, v := range updates {
		switch k {
		case "title":
			card.Title = v.(string)
		case "content":
			if v == nil {
				card.Content = ""
			} else {
				card.Content = v.(string)
			}
		case "projectId":
			if v == nil {
				card.ProjectID = ""
			} else {
				card.ProjectID = v.(string)
			}
		case "dueDate":
			if v == nil {
				card.DueDate = nil
			}
		}
	}
	cp := *card
	return &cp, nil
}

func (s *fakeCardStore) Delete(_ context.Context, cardID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	delete(s.env.cards, cardID)
	return nil
}

func (s *fakeCardStore) DeleteByColumn(_ context.Context, columnID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	for id, c := range s.env.cards {
		if c.ColumnID == columnID {
			delete(s.env.cards, id)
		}
	}
	return nil
}

func (s *fakeCardStore) DeleteByBoard(_ context.Context, boardID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	for id, c := range s.env.cards {
		if c.BoardID == boardID {
			delete(s.env.cards, id)
		}
	}
	return nil
}

func (s *fakeCardStore) ListByBoard(_ context.Context, boardID string) ([]models.Card, error) {
	var out []models.Card
	for _, c := range s.env.cards {
		if c.BoardID == boardID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ColumnID != out[j].ColumnID {
			return out[i].ColumnID < out[j].ColumnID
		}
		return out[i].Rank < out[j].Rank
	})
	return out, nil
}

func (s *fakeCardStore) SiblingIDs(_ context.Context, columnID string) ([]string, error) {
	var siblings []*models.Card
	for _, c := range s.env.cards {
		if c.ColumnID == columnID {
			siblings = append(siblings, c)
		}
	}
	sort.Slice(siblings, func(i, j int) bool { return siblings[i].Rank < siblings[j].Rank })
	ids := make([]string, len(siblings))
	for i, c := range siblings {
		ids[i] = c.ID
	}
	return ids, nil
}

func (s *fakeCardStore) SetRank(_ context.Context, cardID string, rank int) error {
	if err := s.env.write(); err != nil {
		return err
	}
	card, ok := s.env.cards[cardID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for id, c := range s.env.cards {
		if id != cardID && c.ColumnID == card.ColumnID && c.Rank == rank {
			return duplicateKeyError()
		}
	}
	card.Rank = rank
	return nil
}

func (s *fakeCardStore) Relocate(_ context.Context, cardID, columnID string, rank int) error {
	if err := s.env.write(); err != nil {
		return err
	}
	card, ok := s.env.cards[cardID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for id, c := range s.env.cards {
		if id != cardID && c.ColumnID == columnID && c.Rank == rank {
			return duplicateKeyError()
		}
	}
	card.ColumnID = columnID
	card.Rank = rank
	return nil
}

// column store

type fakeColumnStore struct{ env *fakeEnv }

func (s *fakeColumnStore) Create(_ context.Context, column *models.Column) error {
	if err := s.env.write(); err != nil {
		return err
	}
	if column.ID == "" {
		column.ID = fmt.Sprintf("col-%d", len(s.env.columns)+1)
	}
	for _, c := range s.env.columns {
		if c.BoardID == column.BoardID && (c.Rank == column.Rank || c.Name == column.Name) {
			return duplicateKeyError()
		}
	}
	cp := *column
	s.env.columns[column.ID] = &cp
	return nil
}

func (s *fakeColumnStore) FindByID(_ context.Context, columnID string) (*models.Column, error) {
	column, ok := s.env.columns[columnID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *column
	return &cp, nil
}

func (s *fakeColumnStore) CountByBoard(_ context.Context, boardID string) (int64, error) {
	var n int64
	for _, c := range s.env.columns {
		if c.BoardID == boardID {
			n++
		}
	}
	return n, nil
}

func (s *fakeColumnStore) Update(_ context.Context, columnID string, updates bson.M) (*models.Column, error) {
	if err := s.env.write(); err != nil {
		return nil, err
	}
	column, ok := s.env.columns[columnID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if name, ok := updates["name"]; ok {
		for id, c := range s.env.columns {
			if id != columnID && c.BoardID == column.BoardID && c.Name == name.(string) {
				return nil, duplicateKeyError()
			}
		}
		column.Name = name.(string)
	}
	if status, ok := updates["status"]; ok {
		column.Status = status.(string)
	}
	cp := *column
	return &cp, nil
}

func (s *fakeColumnStore) Delete(_ context.Context, columnID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	delete(s.env.columns, columnID)
	return nil
}

func (s *fakeColumnStore) DeleteByBoard(_ context.Context, boardID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	for id, c := range s.env.columns {
		if c.BoardID == boardID {
			delete(s.env.columns, id)
		}
	}
	return nil
}

func (s *fakeColumnStore) ListByBoard(_ context.Context, boardID string) ([]models.Column, error) {
	var out []models.Column
	for _, c := range s.env.columns {
		if c.BoardID == boardID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (s *fakeColumnStore) SiblingIDs(_ context.Context, boardID string) ([]string, error) {
	columns, _ := s.ListByBoard(context.Background(), boardID)
	ids := make([]string, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
	}
	return ids, nil
}

func (s *fakeColumnStore) SetRank(_ context.Context, columnID string, rank int) error {
	if err := s.env.write(); err != nil {
		return err
	}
	column, ok := s.env.columns[columnID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for id, c := range s.env.columns {
		if id != columnID && c.BoardID == column.BoardID && c.Rank == rank {
			return duplicateKeyError()
		}
	}
	column.Rank = rank
	return nil
}

func (s *fakeColumnStore) Relocate(_ context.Context, columnID, boardID string, rank int) error {
	if err := s.env.write(); err != nil {
		return err
	}
	column, ok := s.env.columns[columnID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	column.BoardID = boardID
	column.Rank = rank
	return nil
}

// board store

type fakeBoardStore struct{ env *fakeEnv }

func (s *fakeBoardStore) Create(_ context.Context, board *models.Board) error {
	if err := s.env.write(); err != nil {
		return err
	}
	if board.ID == "" {
		board.ID = fmt.Sprintf("board-%d", len(s.env.boards)+1)
	}
	cp := *board
	s.env.boards[board.ID] = &cp
	return nil
}

func (s *fakeBoardStore) FindByID(_ context.Context, boardID string) (*models.Board, error) {
	board, ok := s.env.boards[boardID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *board
	return &cp, nil
}

func (s *fakeBoardStore) ListByTeam(_ context.Context, teamID string) ([]models.Board, error) {
	var out []models.Board
	for _, b := range s.env.boards {
		if b.TeamID == teamID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeBoardStore) UpdateName(_ context.Context, boardID, name string) (*models.Board, error) {
	if err := s.env.write(); err != nil {
		return nil, err
	}
	board, ok := s.env.boards[boardID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	board.Name = name
	cp := *board
	return &cp, nil
}

func (s *fakeBoardStore) Delete(_ context.Context, boardID string) error {
	if err := s.env.write(); err != nil {
		return err
	}
	delete(s.env.boards, boardID)
	return nil
}

// project finder

type fakeProjectStore struct{ env *fakeEnv }

func (s *fakeProjectStore) FindByID(_ context.Context, projectID string) (*models.Project, error) {
	project, ok := s.env.projects[projectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *project
	return &cp, nil
}

// access stores

type fakeUserStore struct{ env *fakeEnv }

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.env.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *user
	return &cp, nil
}

type fakeMemberStore struct{ env *fakeEnv }

func (s *fakeMemberStore) FindMember(_ context.Context, teamID, userID string) (*models.TeamMember, error) {
	member, ok := s.env.members[teamID+"/"+userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *member
	return &cp, nil
}

// seeding helpers

func (e *fakeEnv) seedBoard(boardID, teamID string) {
	e.boards[boardID] = &models.Board{ID: boardID, TeamID: teamID, Name: boardID}
}

func (e *fakeEnv) seedColumn(columnID, boardID string, rank int) {
	e.columns[columnID] = &models.Column{ID: columnID, BoardID: boardID, Name: columnID, Rank: rank}
}

func (e *fakeEnv) seedCard(cardID, boardID, columnID string, rank int) {
	e.cards[cardID] = &models.Card{ID: cardID, BoardID: boardID, ColumnID: columnID, Title: cardID, Rank: rank}
}

func (e *fakeEnv) cardOrder(columnID string) []string {
	store := &fakeCardStore{env: e}
	ids, _ := store.SiblingIDs(context.Background(), columnID)
	return ids
}

func (e *fakeEnv) columnOrder(boardID string) []string {
	store := &fakeColumnStore{env: e}
	ids, _ := store.SiblingIDs(context.Background(), boardID)
	return ids
}
