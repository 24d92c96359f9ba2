// Package collections manages user-curated title lists and their share
// links.
package collections

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Create makes an empty collection owned by the user.
func (svc *Service) Create(userID int64, name, description string, isPublic bool) (*models.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	return svc.store.CreateCollection(userID, name, description, isPublic)
}

// Get returns a collection visible to the user: their own, or anyone's
// public one.
func (svc *Service) Get(userID, collectionID int64) (*models.Collection, error) {
	c, err := svc.store.GetCollectionByID(collectionID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID && !c.IsPublic {
		return nil, fmt.Errorf("collection %d is private: %w", collectionID, errs.ErrForbidden)
	}
	return c, nil
}

// ListOwn returns the user's collections.
func (svc *Service) ListOwn(userID int64) ([]*models.Collection, error) {
	return svc.store.ListCollectionsByAuthor(userID)
}

// Update changes name, description and visibility. Only the owner may
// modify a collection.
func (svc *Service) Update(userID, collectionID int64, name, description string, isPublic bool) (*models.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	if _, err := svc.owned(userID, collectionID); err != nil {
		return nil, err
	}
	if err := svc.store.UpdateCollection(collectionID, name, description, isPublic); err != nil {
		return nil, err
	}
	return svc.store.GetCollectionByID(collectionID)
}

// Delete removes the user's collection.
func (svc *Service) Delete(userID, collectionID int64) error {
	if _, err := svc.owned(userID, collectionID); err != nil {
		return err
	}
	return svc.store.DeleteCollection(collectionID)
}

// AddTitle appends a title to the user's collection.
func (svc *Service) AddTitle(userID, collectionID, titleID int64) error {
	if _, err := svc.owned(userID, collectionID); err != nil {
		return err
	}
	if _, err := svc.store.GetTitleByID(titleID); err != nil {
		return err
	}
	return svc.store.AddCollectionTitle(collectionID, titleID)
}

// RemoveTitle drops a title from the user's collection.
func (svc *Service) RemoveTitle(userID, collectionID, titleID int64) error {
	if _, err := svc.owned(userID, collectionID); err != nil {
		return err
	}
	return svc.store.RemoveCollectionTitle(collectionID, titleID)
}

// GenerateShareToken issues a fresh share link token, replacing any
// previous one. Old links stop working immediately.
func (svc *Service) GenerateShareToken(userID, collectionID int64) (string, error) {
	if _, err := svc.owned(userID, collectionID); err != nil {
		return "", err
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	if err := svc.store.SetCollectionShareToken(collectionID, &token); err != nil {
		return "", err
	}
	return token, nil
}

// RevokeShareToken invalidates the collection's share link.
func (svc *Service) RevokeShareToken(userID, collectionID int64) error {
	if _, err := svc.owned(userID, collectionID); err != nil {
		return err
	}
	return svc.store.SetCollectionShareToken(collectionID, nil)
}

// Resolve looks up a collection by its share token. No authentication
// is required; the token itself is the capability.
func (svc *Service) Resolve(token string) (*models.Collection, error) {
	if token == "" {
		return nil, fmt.Errorf("share token cannot be empty: %w", errs.ErrInvalidRequest)
	}
	return svc.store.GetCollectionByShareToken(token)
}

func (svc *Service) owned(userID, collectionID int64) (*models.Collection, error) {
	c, err := svc.store.GetCollectionByID(collectionID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, fmt.Errorf("collection %d belongs to another user: %w", collectionID, errs.ErrForbidden)
	}
	return c, nil
}
