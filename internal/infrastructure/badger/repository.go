package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

const (
	docPrefix   = "bspaoh:"
	eventPrefix = "event:"
)

// Repository guarda os bordereaux e o log de eventos num badger.
type Repository struct {
	db *badger.DB
}

// Open abre (ou cria) a base em path. Com inMemory o path é ignorado.
func Open(path string, inMemory bool) (*Repository, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Repository{db: db}, nil
}

func New(db *badger.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Close() error { return r.db.Close() }

func docKey(id string) []byte { return []byte(docPrefix + id) }

func eventKey(id string, seq int) []byte {
	return []byte(fmt.Sprintf("%s%s:%010d", eventPrefix, id, seq))
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Bspaoh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b *model.Bspaoh
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		b, err = readDoc(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Repository) Create(ctx context.Context, b *model.Bspaoh, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(docKey(b.ID))
		if err == nil {
			return fmt.Errorf("bspaoh %s already exists", b.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return write(txn, b, ev, 0)
	})
	return mapConflict(err)
}

func (r *Repository) Update(ctx context.Context, b *model.Bspaoh, expected domain.BspaohStatus, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		cur, err := readDoc(txn, b.ID)
		if err != nil {
			return err
		}
		if cur.Status != expected {
			return domain.ErrStatusConflict
		}
		seq, err := countEvents(txn, b.ID)
		if err != nil {
			return err
		}
		return write(txn, b, ev, seq)
	})
	return mapConflict(err)
}

func (r *Repository) Events(ctx context.Context, id string) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	events := []domain.Event{}
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(eventPrefix + id + ":")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var ev domain.Event
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			}); err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read events %s: %w", id, err)
	}
	return events, nil
}

func readDoc(txn *badger.Txn, id string) (*model.Bspaoh, error) {
	item, err := txn.Get(docKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("read bspaoh %s: %w", id, err)
	}
	var b model.Bspaoh
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &b)
	}); err != nil {
		return nil, fmt.Errorf("decode bspaoh %s: %w", id, err)
	}
	if b.IsDeleted {
		return nil, &domain.NotFoundError{ID: id}
	}
	b.IsDraft = b.Status == domain.StatusDraft
	return &b, nil
}

func countEvents(txn *badger.Txn, id string) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()
	prefix := []byte(eventPrefix + id + ":")
	n := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n, nil
}

func write(txn *badger.Txn, b *model.Bspaoh, ev domain.Event, seq int) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bspaoh %s: %w", b.ID, err)
	}
	evData, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	if err := txn.Set(docKey(b.ID), doc); err != nil {
		return err
	}
	return txn.Set(eventKey(b.ID, seq), evData)
}

func mapConflict(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return domain.ErrStatusConflict
	}
	return err
}
