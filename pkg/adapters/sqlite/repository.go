package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	driver "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Repository implements core.Repository on an embedded SQLite database via GORM.
type Repository struct {
	Path   string
	config Config
	logger *slog.Logger

	mu       sync.Mutex
	db       *gorm.DB
	loaded   int
	skipped  int
	lastSave *time.Time
}

// Config holds the configuration for the SQLite repository.
type Config struct {
	// Path of the database file.
	Path     string
	IDPolicy core.IDPolicy
	// Strict turns undecodable rows into load errors instead of skipping them.
	Strict bool
	Logger *slog.Logger
}

// NewRepository creates a new SQLite-backed repository. The database is
// opened lazily by the first operation.
func NewRepository(config Config) *Repository {
	if config.IDPolicy == "" {
		config.IDPolicy = core.IDPolicyMax
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{Path: config.Path, config: config, logger: logger}
}

func (r *Repository) conn(ctx context.Context) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db.WithContext(ctx), nil
	}

	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, core.StorageError("create database directory", err)
		}
	}

	db, err := gorm.Open(driver.Open(r.Path), &gorm.Config{
		Logger: newGormLogger(r.logger),
	})
	if err != nil {
		return nil, core.StorageError("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, core.StorageError("open database", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&noteModel{}, &sequenceModel{}); err != nil {
		sqlDB.Close()
		return nil, core.StorageError("migrate database", err)
	}

	r.db = db
	r.logger.Debug("database opened", "path", r.Path)
	return db.WithContext(ctx), nil
}

// Initialize opens the database and migrates the schema.
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.conn(ctx)
	return err
}

// LoadAll returns every note ordered by id. Undecodable rows are
// skipped with a warning unless the repository is strict.
func (r *Repository) LoadAll(ctx context.Context) ([]core.Note, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []noteModel
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, core.StorageError("query notes", err)
	}

	notes := make([]core.Note, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		n, err := row.toNote()
		if err != nil {
			if r.config.Strict {
				return nil, core.WrapError(core.KindFormat, fmt.Sprintf("%s: %s", r.Path, core.MessageOf(err)), err)
			}
			r.logger.Warn("skipping malformed note", "path", r.Path, "id", row.ID, "error", core.MessageOf(err))
			skipped++
			continue
		}
		notes = append(notes, n)
	}

	r.mu.Lock()
	r.loaded, r.skipped = len(notes), skipped
	r.mu.Unlock()
	return notes, nil
}

// SaveAll replaces every row in one transaction.
func (r *Repository) SaveAll(ctx context.Context, notes []core.Note) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	models := make([]noteModel, 0, len(notes))
	for _, n := range notes {
		m, err := toModel(n)
		if err != nil {
			return core.StorageError("encode note", err)
		}
		models = append(models, m)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&noteModel{}).Error; err != nil {
			return err
		}
		if len(models) > 0 {
			if err := tx.CreateInBatches(&models, 100).Error; err != nil {
				return err
			}
		}
		return r.bumpSequence(tx, core.MaxID(notes))
	})
	if err != nil {
		return core.StorageError("save notes", err)
	}

	now := time.Now()
	r.mu.Lock()
	r.loaded = len(notes)
	r.lastSave = &now
	r.mu.Unlock()

	r.logger.Debug("notes saved", "path", r.Path, "notes", len(notes))
	return nil
}

func (r *Repository) bumpSequence(tx *gorm.DB, id int) error {
	if r.config.IDPolicy != core.IDPolicySequence {
		return nil
	}
	last, err := readSequence(tx)
	if err != nil {
		return err
	}
	if id <= last {
		return nil
	}
	return tx.Save(&sequenceModel{Name: sequenceName, LastID: id}).Error
}

func readSequence(tx *gorm.DB) (int, error) {
	var seq sequenceModel
	err := tx.Where("name = ?", sequenceName).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return seq.LastID, nil
}

// NextID follows the configured IDPolicy.
func (r *Repository) NextID(ctx context.Context) (int, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}

	var maxID int
	if err := db.Model(&noteModel{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return 0, core.StorageError("query max id", err)
	}
	next := maxID + 1

	if r.config.IDPolicy == core.IDPolicySequence {
		last, err := readSequence(db)
		if err != nil {
			return 0, core.StorageError("read id sequence", err)
		}
		next = max(next, last+1)
	}
	return next, nil
}

// AllTags returns the sorted union of every tag.
func (r *Repository) AllTags(ctx context.Context) ([]string, error) {
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.CollectTags(notes), nil
}

// Add inserts a single note, assigning NextID when n.ID is zero.
func (r *Repository) Add(ctx context.Context, n core.Note) (core.Note, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return core.Note{}, err
	}
	if n.ID == 0 {
		if n.ID, err = r.NextID(ctx); err != nil {
			return core.Note{}, err
		}
	}
	if err := n.Validate(); err != nil {
		return core.Note{}, err
	}

	m, err := toModel(n)
	if err != nil {
		return core.Note{}, core.StorageError("encode note", err)
	}

	var exists int64
	if err := db.Model(&noteModel{}).Where("id = ?", n.ID).Count(&exists).Error; err != nil {
		return core.Note{}, core.StorageError("check note", err)
	}
	if exists > 0 {
		return core.Note{}, core.NewError(core.KindValidation, fmt.Sprintf("note #%d already exists", n.ID))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return r.bumpSequence(tx, n.ID)
	})
	if err != nil {
		return core.Note{}, core.StorageError("insert note", err)
	}
	return n, nil
}

// Get retrieves a note by id.
func (r *Repository) Get(ctx context.Context, id int) (core.Note, bool, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return core.Note{}, false, err
	}

	var row noteModel
	err = db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Note{}, false, nil
	}
	if err != nil {
		return core.Note{}, false, core.StorageError("query note", err)
	}

	n, err := row.toNote()
	if err != nil {
		return core.Note{}, false, err
	}
	return n, true, nil
}

// Update replaces the row with the same id. An invalid note is rejected
// before the database is touched.
func (r *Repository) Update(ctx context.Context, n core.Note) (bool, error) {
	if err := n.Validate(); err != nil {
		return false, err
	}
	db, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	m, err := toModel(n)
	if err != nil {
		return false, core.StorageError("encode note", err)
	}

	res := db.Model(&noteModel{}).Where("id = ?", n.ID).Updates(map[string]any{
		"title":      m.Title,
		"content":    m.Content,
		"category":   m.Category,
		"priority":   m.Priority,
		"tags":       m.Tags,
		"status":     m.Status,
		"created_at": m.Created,
		"updated_at": m.Updated,
	})
	if res.Error != nil {
		return false, core.StorageError("update note", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a note by id.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return false, err
	}
	res := db.Where("id = ?", id).Delete(&noteModel{})
	if res.Error != nil {
		return false, core.StorageError("delete note", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	r.db = nil
	return sqlDB.Close()
}

var _ core.Repository = (*Repository)(nil)
