package services

import (
	"context"
	"errors"

	"teamboard-be/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Stores the access checks read from. The mongo repositories satisfy these.
type userFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type memberFinder interface {
	FindMember(ctx context.Context, teamID, userID string) (*models.TeamMember, error)
}

type boardFinder interface {
	FindByID(ctx context.Context, boardID string) (*models.Board, error)
}

// AccessService answers the authorization questions the handlers ask before
// touching board data: is the requester an active user, a global admin, a
// member of the relevant team, the owner of the board.
type AccessService struct {
	users   userFinder
	members memberFinder
	boards  boardFinder
}

func NewAccessService(users userFinder, members memberFinder, boards boardFinder) *AccessService {
	return &AccessService{users: users, members: members, boards: boards}
}

// ActiveUser loads the requester and fails with ErrUnauthorized when the
// account is missing or deactivated.
func (s *AccessService) ActiveUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// RequireAdmin passes only for active users with the global ADMIN role.
func (s *AccessService) RequireAdmin(ctx context.Context, userID string) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.GlobalRole != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// RequireTeamMember passes for team members and global admins.
func (s *AccessService) RequireTeamMember(ctx context.Context, userID, teamID string) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.GlobalRole == models.RoleAdmin {
		return nil
	}

	if _, err := s.members.FindMember(ctx, teamID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrForbidden
		}
		return err
	}
	return nil
}

// RequireBoardAccess resolves the board's team and applies the membership
// check. Admin bypass applies before the board lookup, mirroring the
// membership check.
func (s *AccessService) RequireBoardAccess(ctx context.Context, userID, boardID string) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.GlobalRole == models.RoleAdmin {
		return nil
	}

	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBoardNotFound
		}
		return err
	}

	if _, err := s.members.FindMember(ctx, board.TeamID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrForbidden
		}
		return err
	}
	return nil
}

// RequireBoardOwner passes for the board's creator and global admins.
func (s *AccessService) RequireBoardOwner(ctx context.Context, userID, boardID string) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.GlobalRole == models.RoleAdmin {
		return nil
	}

	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBoardNotFound
		}
		return err
	}

	if board.CreatedByUserID != userID {
		return ErrForbidden
	}
	return nil
}
