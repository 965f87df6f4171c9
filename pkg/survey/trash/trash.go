package trash

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/google/uuid"
)

const (
	RETENTION_PERIOD = 30 * 24 * time.Hour
	ITEM_ID_PREFIX   = "trash-"
)

var ErrTrashItemNotFound = errors.New("trash item not found")

// Store persists the whole item list.
type Store interface {
	LoadTrash() ([]types.TrashItem, error)
	SaveTrash(items []types.TrashItem) error
}

// Bin holds deleted blocks and questions until they are restored, deleted or expire.
// Newest items come first.
type Bin struct {
	mu    sync.Mutex
	store Store
	items []types.TrashItem
	now   func() time.Time
}

// Open loads the stored items and drops the expired ones. The pruned list is written back only
// when something expired.
func Open(store Store) (*Bin, error) {
	return open(store, time.Now)
}

func open(store Store, now func() time.Time) (*Bin, error) {
	items, err := store.LoadTrash()
	if err != nil {
		return nil, err
	}

	valid := validItems(items, now())
	bin := &Bin{store: store, items: valid, now: now}
	if len(valid) != len(items) {
		slog.Info("purged expired trash items", slog.Int("count", len(items)-len(valid)))
		if err := store.SaveTrash(valid); err != nil {
			return nil, err
		}
	}
	return bin, nil
}

func (b *Bin) AddBlock(block types.Block) (types.TrashItem, error) {
	return b.AddToTrash(types.TrashItem{Type: types.TRASH_ITEM_TYPE_BLOCK, Block: &block})
}

func (b *Bin) AddQuestion(question types.Question, originalBlockID string) (types.TrashItem, error) {
	return b.AddToTrash(types.TrashItem{
		Type:            types.TRASH_ITEM_TYPE_QUESTION,
		Question:        &question,
		OriginalBlockID: originalBlockID,
	})
}

// AddToTrash stamps the item with a new id, the deletion time and the expiry, and puts it first.
func (b *Bin) AddToTrash(item types.TrashItem) (types.TrashItem, error) {
	switch item.Type {
	case types.TRASH_ITEM_TYPE_BLOCK:
		if item.Block == nil {
			return item, errors.New("block item without block")
		}
	case types.TRASH_ITEM_TYPE_QUESTION:
		if item.Question == nil {
			return item, errors.New("question item without question")
		}
	default:
		return item, errors.New("unknown trash item type: " + string(item.Type))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.purgeExpired()
	now := b.now()
	item.ID = ITEM_ID_PREFIX + uuid.NewString()
	item.DeletedAt = now
	item.ExpiresAt = now.Add(RETENTION_PERIOD)

	items := append([]types.TrashItem{item}, b.items...)
	if err := b.store.SaveTrash(items); err != nil {
		return item, err
	}
	b.items = items
	return item, nil
}

// RestoreFromTrash removes the item from the bin and returns it so the caller can put it back.
// Expired items cannot be restored.
func (b *Bin) RestoreFromTrash(itemID string) (types.TrashItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeExpired()

	index := b.indexOf(itemID)
	if index < 0 {
		return types.TrashItem{}, ErrTrashItemNotFound
	}
	item := b.items[index]
	if err := b.remove(index); err != nil {
		return types.TrashItem{}, err
	}
	return item, nil
}

func (b *Bin) PermanentDelete(itemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeExpired()

	index := b.indexOf(itemID)
	if index < 0 {
		return ErrTrashItemNotFound
	}
	return b.remove(index)
}

func (b *Bin) EmptyTrash() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.SaveTrash([]types.TrashItem{}); err != nil {
		return err
	}
	b.items = []types.TrashItem{}
	return nil
}

func (b *Bin) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeExpired()
	return len(b.items)
}

// Items returns a copy of the items that have not expired, newest first.
func (b *Bin) Items() []types.TrashItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeExpired()
	return append([]types.TrashItem{}, b.items...)
}

// Get returns the item with the given id unless it expired.
func (b *Bin) Get(itemID string) (types.TrashItem, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeExpired()
	index := b.indexOf(itemID)
	if index < 0 {
		return types.TrashItem{}, false
	}
	return b.items[index], true
}

// purgeExpired drops items past their expiry. A failed write keeps the items in the store; they
// are hidden anyway and the next write retries.
func (b *Bin) purgeExpired() {
	valid := validItems(b.items, b.now())
	if len(valid) == len(b.items) {
		return
	}
	removed := len(b.items) - len(valid)
	b.items = valid
	if err := b.store.SaveTrash(valid); err != nil {
		slog.Warn("failed to persist purged trash", slog.String("error", err.Error()))
		return
	}
	slog.Info("purged expired trash items", slog.Int("count", removed))
}

func validItems(items []types.TrashItem, now time.Time) []types.TrashItem {
	valid := make([]types.TrashItem, 0, len(items))
	for _, item := range items {
		if !item.IsExpired(now) {
			valid = append(valid, item)
		}
	}
	return valid
}

func (b *Bin) indexOf(itemID string) int {
	for i, item := range b.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (b *Bin) remove(index int) error {
	items := make([]types.TrashItem, 0, len(b.items)-1)
	items = append(items, b.items[:index]...)
	items = append(items, b.items[index+1:]...)
	if err := b.store.SaveTrash(items); err != nil {
		return err
	}
	b.items = items
	return nil
}
