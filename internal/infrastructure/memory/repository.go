package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type Repository struct {
	mu     sync.RWMutex
	docs   map[string]*model.Bspaoh
	events map[string][]domain.Event
}

func NewRepository() *Repository {
	return &Repository{docs: map[string]*model.Bspaoh{}, events: map[string][]domain.Event{}}
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Bspaoh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.docs[id]
	if !ok || b.IsDeleted {
		return nil, &domain.NotFoundError{ID: id}
	}
	return b.Clone()
}

func (r *Repository) Create(ctx context.Context, b *model.Bspaoh, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := b.Clone()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[b.ID]; exists {
		return fmt.Errorf("bspaoh %s already exists", b.ID)
	}
	r.docs[b.ID] = cp
	r.events[b.ID] = append(r.events[b.ID], ev)
	return nil
}

func (r *Repository) Update(ctx context.Context, b *model.Bspaoh, expected domain.BspaohStatus, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := b.Clone()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.docs[b.ID]
	if !ok || cur.IsDeleted {
		return &domain.NotFoundError{ID: b.ID}
	}
	if cur.Status != expected {
		return domain.ErrStatusConflict
	}
	r.docs[b.ID] = cp
	r.events[b.ID] = append(r.events[b.ID], ev)
	return nil
}

func (r *Repository) Events(ctx context.Context, id string) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Event(nil), r.events[id]...), nil
}
