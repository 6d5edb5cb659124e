package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"teamboard-be/internal/models"
	"teamboard-be/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is a minimal in-memory backend for handler tests. It satisfies
// every store interface the card service and access service consume.
type memStore struct {
	users   map[string]*models.User
	members map[string]*models.TeamMember
	boards  map[string]*models.Board
	columns map[string]*models.Column
	cards   map[string]*models.Card
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		members: map[string]*models.TeamMember{},
		boards:  map[string]*models.Board{},
		columns: map[string]*models.Column{},
		cards:   map[string]*models.Card{},
	}
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memStore) FindMember(_ context.Context, teamID, userID string) (*models.TeamMember, error) {
	if m, ok := s.members[teamID+"/"+userID]; ok {
		return m, nil
	}
	return nil, mongo.ErrNoDocuments
}

type memBoards struct{ s *memStore }

func (b memBoards) FindByID(_ context.Context, boardID string) (*models.Board, error) {
	if board, ok := b.s.boards[boardID]; ok {
		return board, nil
	}
	return nil, mongo.ErrNoDocuments
}

type memColumns struct{ s *memStore }

func (c memColumns) FindByID(_ context.Context, columnID string) (*models.Column, error) {
	if col, ok := c.s.columns[columnID]; ok {
		return col, nil
	}
	return nil, mongo.ErrNoDocuments
}

type memProjects struct{ s *memStore }

func (p memProjects) FindByID(_ context.Context, _ string) (*models.Project, error) {
	return nil, mongo.ErrNoDocuments
}

type memCards struct{ s *memStore }

func (c memCards) Create(_ context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = "card-new"
	}
	s := *card
	c.s.cards[card.ID] = &s
	return nil
}

func (c memCards) FindByID(_ context.Context, cardID string) (*models.Card, error) {
	if card, ok := c.s.cards[cardID]; ok {
		cp := *card
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (c memCards) CountByColumn(_ context.Context, columnID string) (int64, error) {
	var n int64
	for _, card := range c.s.cards {
		if card.ColumnID == columnID {
			n++
		}
	}
	return n, nil
}

func (c memCards) Update(_ context.Context, cardID string, _ bson.M) (*models.Card, error) {
	return c.FindByID(context.Background(), cardID)
}

func (c memCards) Delete(_ context.Context, cardID string) error {
	delete(c.s.cards, cardID)
	return nil
}

func (c memCards) SiblingIDs(_ context.Context, columnID string) ([]string, error) {
	var siblings []*models.Card
	for _, card := range c.s.cards {
		if card.ColumnID == columnID {
			siblings = append(siblings, card)
		}
	}
	sort.Slice(siblings, func(i, j int) bool { return siblings[i].Rank < siblings[j].Rank })
	ids := make([]string, len(siblings))
	for i, card := range siblings {
		ids[i] = card.ID
	}
	return ids, nil
}

func (c memCards) SetRank(_ context.Context, cardID string, rank int) error {
	c.s.cards[cardID].Rank = rank
	return nil
}

func (c memCards) Relocate(_ context.Context, cardID, columnID string, rank int) error {
	c.s.cards[cardID].ColumnID = columnID
	c.s.cards[cardID].Rank = rank
	return nil
}

func newTestRouter(s *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	access := services.NewAccessService(s, s, memBoards{s})
	cardSvc := services.NewCardService(memCards{s}, memColumns{s}, memProjects{s}, s)
	handler := NewCardHandler(access, cardSvc, services.NewHub())

	r := gin.New()
	authed := r.Group("/api")
	authed.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
	})
	authed.POST("/card", handler.Create)
	authed.PATCH("/card/:cardId/move", handler.Move)
	authed.DELETE("/card/:cardId", handler.Delete)
	return r
}

func seedStore() *memStore {
	s := newMemStore()
	s.users["u1"] = &models.User{GlobalRole: models.RoleUser, IsActive: true}
	s.members["t1/u1"] = &models.TeamMember{TeamID: "t1", UserID: "u1", Role: models.TeamRoleMember}
	s.boards["b1"] = &models.Board{ID: "b1", TeamID: "t1"}
	s.boards["b2"] = &models.Board{ID: "b2", TeamID: "t1"}
	s.columns["c1"] = &models.Column{ID: "c1", BoardID: "b1", Name: "TO DO"}
	s.columns["c2"] = &models.Column{ID: "c2", BoardID: "b1", Name: "DONE"}
	s.columns["other"] = &models.Column{ID: "other", BoardID: "b2", Name: "TO DO"}
	s.cards["k1"] = &models.Card{ID: "k1", BoardID: "b1", ColumnID: "c1", Rank: 1}
	s.cards["k2"] = &models.Card{ID: "k2", BoardID: "b1", ColumnID: "c1", Rank: 2}
	return s
}

func TestMoveCardEndpoint(t *testing.T) {
	s := seedStore()
	r := newTestRouter(s)

	body := `{"toColumnId":"c2","toIndex":0}`
	req := httptest.NewRequest(http.MethodPatch, "/api/card/k2/move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp models.OkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Ok {
		t.Fatalf("body = %s", w.Body.String())
	}
	if s.cards["k2"].ColumnID != "c2" || s.cards["k2"].Rank != 1 {
		t.Errorf("card landed at %s rank %d", s.cards["k2"].ColumnID, s.cards["k2"].Rank)
	}
	if s.cards["k1"].Rank != 1 {
		t.Errorf("source not compacted, k1 rank = %d", s.cards["k1"].Rank)
	}
}

func TestMoveCardEndpointCrossBoard(t *testing.T) {
	s := seedStore()
	r := newTestRouter(s)

	body := `{"toColumnId":"other","toIndex":0}`
	req := httptest.NewRequest(http.MethodPatch, "/api/card/k1/move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_TARGET" {
		t.Errorf("code = %q, want INVALID_TARGET", resp.Code)
	}
	if s.cards["k1"].ColumnID != "c1" || s.cards["k1"].Rank != 1 {
		t.Errorf("card mutated: %s rank %d", s.cards["k1"].ColumnID, s.cards["k1"].Rank)
	}
}

func TestMoveCardEndpointMissingIndex(t *testing.T) {
	s := seedStore()
	r := newTestRouter(s)

	req := httptest.NewRequest(http.MethodPatch, "/api/card/k1/move", strings.NewReader(`{"toColumnId":"c2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestMoveCardEndpointUnknownCard(t *testing.T) {
	s := seedStore()
	r := newTestRouter(s)

	body := `{"toColumnId":"c2","toIndex":0}`
	req := httptest.NewRequest(http.MethodPatch, "/api/card/ghost/move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp models.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "CARD_NOT_FOUND" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestErrorBodyMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{services.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{services.ErrCardNotFound, http.StatusNotFound, "CARD_NOT_FOUND"},
		{services.ErrColumnNotFound, http.StatusNotFound, "COLUMN_NOT_FOUND"},
		{services.ErrBoardNotFound, http.StatusNotFound, "BOARD_NOT_FOUND"},
		{services.ErrCrossBoardMove, http.StatusBadRequest, "INVALID_TARGET"},
		{services.ErrNoFields, http.StatusBadRequest, "NO_FIELDS"},
		{services.ErrNameTaken, http.StatusConflict, "NAME_EXISTS"},
		{services.ErrCodeTaken, http.StatusConflict, "CODE_EXISTS"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "SERVER_ERROR"},
	}
	for _, tt := range tests {
		status, body := errorBody(tt.err)
		if status != tt.status || body.Code != tt.code {
			t.Errorf("errorBody(%v) = %d %s, want %d %s", tt.err, status, body.Code, tt.status, tt.code)
		}
	}
}
