package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func event(id string, typ domain.EventType) domain.Event {
	return domain.Event{ID: id + "-" + string(typ), StreamID: id, Type: typ, Actor: "u1", Data: []byte(`{}`), CreatedAt: time.Now().UTC()}
}

func TestRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)

	b := &model.Bspaoh{ID: "PAOH-1", Status: domain.StatusDraft, WasteCode: model.Ptr("18 01 02")}
	require.NoError(t, r.Create(ctx, b, event(b.ID, domain.EventCreated)))

	got, err := r.Get(ctx, "PAOH-1")
	require.NoError(t, err)
	assert.Equal(t, "18 01 02", *got.WasteCode)
	assert.True(t, got.IsDraft)

	got.Status = domain.StatusInitial
	require.NoError(t, r.Update(ctx, got, domain.StatusDraft, event(b.ID, domain.EventPublished)))

	got, err = r.Get(ctx, "PAOH-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitial, got.Status)
	assert.False(t, got.IsDraft)

	events, err := r.Events(ctx, "PAOH-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCreated, events[0].Type)
	assert.Equal(t, domain.EventPublished, events[1].Type)
}

func TestRepository_StatusConflict(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)

	b := &model.Bspaoh{ID: "PAOH-2", Status: domain.StatusSent}
	require.NoError(t, r.Create(ctx, b, event(b.ID, domain.EventCreated)))

	b.Status = domain.StatusReceived
	err := r.Update(ctx, b, domain.StatusInitial, event(b.ID, domain.EventSigned))
	assert.True(t, errors.Is(err, domain.ErrStatusConflict))
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)

	_, err := r.Get(ctx, "missing")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	deleted := &model.Bspaoh{ID: "PAOH-3", Status: domain.StatusInitial, IsDeleted: true}
	require.NoError(t, r.Create(ctx, deleted, event(deleted.ID, domain.EventCreated)))
	_, err = r.Get(ctx, "PAOH-3")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRepository_CreateTwice(t *testing.T) {
	ctx := context.Background()
	r := openRepo(t)

	b := &model.Bspaoh{ID: "PAOH-4", Status: domain.StatusInitial}
	require.NoError(t, r.Create(ctx, b, event(b.ID, domain.EventCreated)))
	assert.Error(t, r.Create(ctx, b, event(b.ID, domain.EventCreated)))
}
