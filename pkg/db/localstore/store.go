package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/dgraph-io/badger/v4"
)

const (
	AUTOSAVE_KEY_PREFIX = "survey_builder_autosave"
	TRASH_KEY           = "survey-builder-trash"
)

var ErrDraftNotFound = types.ErrDraftNotFound

type Config struct {
	Path string
	// InMemory keeps everything in memory, used for tests.
	InMemory   bool
	SyncWrites bool
	// GCInterval of zero disables value log garbage collection.
	GCInterval     time.Duration
	GCDiscardRatio float64
}

func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// LocalStore keeps autosaved drafts and the trash bin in an embedded Badger database.
type LocalStore struct {
	db     *badger.DB
	stopGC chan struct{}
	gcDone chan struct{}
}

type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	slog.Error(fmt.Sprintf(format, args...))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(format, args...))
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(format, args...))
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(format, args...))
}

func Open(cfg Config) (*LocalStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("path is required for persistent local store")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create local store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	store := &LocalStore{db: db}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		store.stopGC = make(chan struct{})
		store.gcDone = make(chan struct{})
		go store.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}
	return store, nil
}

func (s *LocalStore) runGC(interval time.Duration, ratio float64) {
	defer close(s.gcDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			if err := s.db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				slog.Warn("local store value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *LocalStore) Close() error {
	if s.stopGC != nil {
		close(s.stopGC)
		<-s.gcDone
	}
	return s.db.Close()
}

// AutosaveKey returns the key of a survey's draft. Surveys without id share one key.
func AutosaveKey(surveyID string) string {
	if surveyID == "" {
		return AUTOSAVE_KEY_PREFIX
	}
	return AUTOSAVE_KEY_PREFIX + "_" + surveyID
}

func (s *LocalStore) SaveDraft(draft types.SurveyDraft) error {
	if draft.Survey == nil {
		return errors.New("draft has no survey")
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(AutosaveKey(draft.Survey.ID)), data)
	})
}

func (s *LocalStore) LoadDraft(surveyID string) (types.SurveyDraft, error) {
	var draft types.SurveyDraft
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(AutosaveKey(surveyID)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &draft)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return draft, ErrDraftNotFound
	}
	if err != nil {
		return draft, fmt.Errorf("load draft %s: %w", surveyID, err)
	}
	return draft, nil
}

func (s *LocalStore) ClearDraft(surveyID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(AutosaveKey(surveyID)))
	})
}

// ListDraftIDs returns the ids of all surveys with a stored draft.
func (s *LocalStore) ListDraftIDs() ([]string, error) {
	ids := []string{}
	prefix := []byte(AUTOSAVE_KEY_PREFIX + "_")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}

// LoadTrash returns the stored trash items, or an empty list when nothing was stored yet.
func (s *LocalStore) LoadTrash() ([]types.TrashItem, error) {
	items := []types.TrashItem{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(TRASH_KEY))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []types.TrashItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load trash: %w", err)
	}
	return items, nil
}

func (s *LocalStore) SaveTrash(items []types.TrashItem) error {
	if items == nil {
		items = []types.TrashItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(TRASH_KEY), data)
	})
}
