// File: services/sport_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/logger"
	"sports-scheduler/models"
	"sports-scheduler/store"
)

// SportService manages the sport catalog. Sports are created by admins
// and never updated or deleted.
type SportService struct {
	users  store.UserStore
	sports store.SportStore
}

// NewSportService creates a SportService.
func NewSportService(users store.UserStore, sports store.SportStore) *SportService {
	return &SportService{users: users, sports: sports}
}

// Create adds a sport. Only admins may create sports; duplicate names are
// rejected.
func (s *SportService) Create(ctx context.Context, actorID primitive.ObjectID, name string) (*models.Sport, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin {
		return nil, ErrAdminOnly
	}
	if name == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.sports.GetByName(ctx, name); err == nil {
		return nil, ErrSportExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing sport: %w", err)
	}

	sp := &models.Sport{Name: name, CreatedBy: actorID}
	if err := s.sports.Insert(ctx, sp); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSportExists
		}
		return nil, err
	}

	logger.Info.Printf("Sport %q created by %s", sp.Name, actorID.Hex())
	return sp, nil
}

// List returns all sports sorted by name; with createdBy set it narrows
// to the sports that user created.
func (s *SportService) List(ctx context.Context, createdBy *primitive.ObjectID) ([]models.Sport, error) {
	return s.sports.List(ctx, createdBy)
}

// Resolve looks a sport up by hex id first, then by exact name. This is
// how the client refers to sports when scheduling a session.
func (s *SportService) Resolve(ctx context.Context, ref string) (*models.Sport, error) {
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		if sp, err := s.sports.GetByID(ctx, id); err == nil {
			return sp, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	sp, err := s.sports.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return sp, nil
}
