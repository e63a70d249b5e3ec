package memory

import (
	"context"
	"sync"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

// Directory é um diretório de empresas em memória, indexado por SIRET e por TVA.
type Directory struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
}

func NewDirectory(companies ...domain.Company) *Directory {
	d := &Directory{companies: map[string]domain.Company{}}
	for _, c := range companies {
		d.Register(c)
	}
	return d
}

func (d *Directory) Register(c domain.Company) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range []string{c.OrgID, c.Siret, c.VatNumber} {
		if id != "" {
			d.companies[id] = c
		}
	}
}

func (d *Directory) Lookup(ctx context.Context, orgID string) (*domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.companies[orgID]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return &c, nil
}

// Users associa utilizadores às organizações a que pertencem.
type Users struct {
	mu    sync.RWMutex
	users map[string][]string
}

func NewUsers() *Users {
	return &Users{users: map[string][]string{}}
}

func (u *Users) Add(userID string, orgIDs ...string) *Users {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[userID] = append(u.users[userID], orgIDs...)
	return u
}

func (u *Users) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	orgs, ok := u.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: userID, OrgIDs: append([]string(nil), orgs...)}, nil
}
