package handlers

import (
	"net/http"

	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sahilm/fuzzy"
)

const maxSearchResults = 20

type SearchHandler struct {
	access      *services.AccessService
	boardRepo   *repository.BoardRepository
	cardRepo    *repository.CardRepository
	projectRepo *repository.ProjectRepository
}

func NewSearchHandler(
	access *services.AccessService,
	boardRepo *repository.BoardRepository,
	cardRepo *repository.CardRepository,
	projectRepo *repository.ProjectRepository,
) *SearchHandler {
	return &SearchHandler{
		access:      access,
		boardRepo:   boardRepo,
		cardRepo:    cardRepo,
		projectRepo: projectRepo,
	}
}

type searchResult struct {
	Type    string `json:"type"` // "card" or "project"
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"boardId,omitempty"`
	Score   int    `json:"score"`
}

// searchEntry pairs a candidate with its folded search key.
type searchEntry struct {
	key    string
	result searchResult
}

type searchCorpus []searchEntry

func (s searchCorpus) String(i int) string { return s[i].key }
func (s searchCorpus) Len() int            { return len(s) }

// Search fuzzy-matches the query against card titles and project names in
// the team. Matching is case- and diacritic-insensitive.
// @Summary Search cards and projects in a team
// @Tags search
// @Produce json
// @Param teamId path string true "Team id"
// @Param q query string true "Query"
// @Success 200 {object} map[string]any
// @Failure 403 {object} models.ErrorResponse
// @Router /teams/{teamId}/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	teamID := c.Param("teamId")
	query := c.Query("q")

	if err := h.access.RequireTeamMember(ctx, requesterID(c), teamID); err != nil {
		respondError(c, err)
		return
	}

	if query == "" {
		c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
		return
	}

	boardIDs, err := h.boardRepo.ListByTeamIDs(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	cards, err := h.cardRepo.ListByBoardIDs(ctx, boardIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	projects, err := h.projectRepo.ListByTeam(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	corpus := make(searchCorpus, 0, len(cards)+len(projects))
	for _, card := range cards {
		corpus = append(corpus, searchEntry{
			key: utils.FoldForSearch(card.Title),
			result: searchResult{
				Type:    "card",
				ID:      card.ID,
				Title:   card.Title,
				BoardID: card.BoardID,
			},
		})
	}
	for _, p := range projects {
		corpus = append(corpus, searchEntry{
			key: utils.FoldForSearch(p.Code + " " + p.Name),
			result: searchResult{
				Type:  "project",
				ID:    p.ID,
				Title: p.Name,
			},
		})
	}

	matches := fuzzy.FindFrom(utils.FoldForSearch(query), corpus)

	results := make([]searchResult, 0, maxSearchResults)
	for _, m := range matches {
		r := corpus[m.Index].result
		r.Score = m.Score
		results = append(results, r)
		if len(results) == maxSearchResults {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "query": query})
}
