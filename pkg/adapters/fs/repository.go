package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/TimRka/Notes-manager-PL/pkg/git"
)

// DefaultSystemDir holds adapter bookkeeping (id sequence, git lock) next to the store.
const DefaultSystemDir = ".notebook"

const sequenceFile = "sequence.json"

// Repository implements core.Repository over a single flat file holding the
// whole collection, optionally versioned with Git.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer
	git        *git.Client
	logger     *slog.Logger

	mu       sync.RWMutex
	loaded   int
	skipped  int
	lastSave *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	// Path of the store file. Its extension selects the format unless Serializer is set.
	Path string
	// SystemDir is relative to the directory of Path.
	SystemDir  string
	Serializer Serializer
	IDPolicy   core.IDPolicy
	// Strict turns malformed records into load errors instead of skipping them.
	Strict bool
	// Versioning commits the store after every save.
	Versioning bool
	Logger     *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.IDPolicy == "" {
		config.IDPolicy = core.IDPolicyMax
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	serializer := config.Serializer
	if serializer == nil {
		serializer = SerializerFor(config.Path)
	}

	dir := filepath.Dir(config.Path)
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: serializer,
		git:        git.NewClient(dir, filepath.Join(config.SystemDir, "git.lock"), logger),
		logger:     logger,
	}
}

func (r *Repository) dir() string {
	return filepath.Dir(r.Path)
}

func (r *Repository) systemPath(name string) string {
	return filepath.Join(r.dir(), r.config.SystemDir, name)
}

// Initialize creates the parent directory and an empty store when missing, and
// prepares the git repository when versioning is enabled.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(r.dir(), 0755); err != nil {
		return core.StorageError("create store directory", err)
	}

	if _, err := os.Stat(r.Path); errors.Is(err, os.ErrNotExist) {
		data, err := r.serializer.Encode(nil)
		if err != nil {
			return core.StorageError("encode empty store", err)
		}
		if err := writeFileAtomic(r.Path, data, 0644); err != nil {
			return core.StorageError("create store", err)
		}
		r.logger.Debug("store created", "path", r.Path, "format", r.serializer.Name())
	} else if err != nil {
		return core.StorageError("stat store", err)
	}

	if r.config.Versioning || r.config.IDPolicy == core.IDPolicySequence {
		if err := os.MkdirAll(filepath.Join(r.dir(), r.config.SystemDir), 0755); err != nil {
			return core.StorageError("create system directory", err)
		}
	}

	if r.config.Versioning {
		if err := r.initGit(); err != nil {
			return core.StorageError("initialize versioning", err)
		}
	}
	return nil
}

func (r *Repository) initGit() error {
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !r.git.IsRepo() {
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := r.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		if err := r.git.Add(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		msg := git.FormatCommitMessage(git.CommitTypeChore, "", fmt.Sprintf("configure %s ignore", r.config.SystemDir), "")
		if err := r.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}
	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.dir(), ".gitignore")
	ignoreEntry := r.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// LoadAll reads every note from the store. A missing store is an empty
// collection. Outside strict mode an unparsable container yields an empty
// collection and malformed records are skipped, both with a warning. A record
// repeating an earlier id is malformed.
func (r *Repository) LoadAll(ctx context.Context) ([]core.Note, error) {
	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.recordLoad(0, 0)
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, core.StorageError("read store", err)
	}

	decoders, err := r.serializer.Split(data)
	if err != nil {
		if r.config.Strict {
			return nil, core.WrapError(core.KindFormat, fmt.Sprintf("%s: %v", r.Path, err), err)
		}
		r.logger.Warn("store is unreadable, treating as empty", "path", r.Path, "error", err)
		r.recordLoad(0, 0)
		return []core.Note{}, nil
	}

	notes := make([]core.Note, 0, len(decoders))
	seen := make(map[int]bool, len(decoders))
	skipped := 0
	for i, decode := range decoders {
		n, err := decodeOne(decode)
		if err == nil && seen[n.ID] {
			err = core.NewError(core.KindFormat, fmt.Sprintf("duplicate id %d", n.ID))
		}
		if err != nil {
			if r.config.Strict {
				return nil, core.WrapError(core.KindFormat, fmt.Sprintf("%s: record %d: %s", r.Path, i, core.MessageOf(err)), err)
			}
			r.logger.Warn("skipping malformed note", "path", r.Path, "index", i, "error", core.MessageOf(err))
			skipped++
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}

	r.recordLoad(len(notes), skipped)
	r.logger.Debug("store loaded", "path", r.Path, "notes", len(notes), "skipped", skipped)
	return notes, nil
}

func decodeOne(decode RecordDecoder) (core.Note, error) {
	var rec core.Record
	if err := decode(&rec); err != nil {
		return core.Note{}, core.WrapError(core.KindFormat, err.Error(), err)
	}
	return core.DecodeRecord(rec)
}

// SaveAll atomically replaces the store with notes, then bumps the id
// sequence and commits when versioning is enabled.
func (r *Repository) SaveAll(ctx context.Context, notes []core.Note) error {
	records := make([]core.Record, 0, len(notes))
	for _, n := range notes {
		records = append(records, n.ToRecord())
	}

	data, err := r.serializer.Encode(records)
	if err != nil {
		return core.StorageError("encode store", err)
	}
	if err := os.MkdirAll(r.dir(), 0755); err != nil {
		return core.StorageError("create store directory", err)
	}
	if err := writeFileAtomic(r.Path, data, 0644); err != nil {
		return core.StorageError("write store", err)
	}

	if r.config.IDPolicy == core.IDPolicySequence {
		if err := r.bumpSequence(core.MaxID(notes)); err != nil {
			return core.StorageError("write id sequence", err)
		}
	}

	if r.config.Versioning {
		if err := r.commit(ctx); err != nil {
			return core.StorageError("commit store", err)
		}
	}

	now := time.Now()
	r.mu.Lock()
	r.loaded = len(notes)
	r.lastSave = &now
	r.mu.Unlock()

	r.logger.Debug("store saved", "path", r.Path, "notes", len(notes))
	return nil
}

func (r *Repository) commit(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Join(r.dir(), r.config.SystemDir), 0755); err != nil {
		return err
	}
	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	rel, err := filepath.Rel(r.dir(), r.Path)
	if err != nil {
		rel = filepath.Base(r.Path)
	}
	if err := r.git.Add(rel); err != nil {
		return err
	}
	changed, err := r.git.HasStagedChanges()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	reason, ok := core.ChangeReason(ctx)
	if !ok || reason == "" {
		reason = "save notes"
	}
	msg := git.FormatCommitMessage(git.CommitTypeFor(reason), "notes", reason, "")
	return r.git.Commit(msg)
}

type sequence struct {
	LastID int `json:"last_id"`
}

func (r *Repository) readSequence() (int, error) {
	data, err := os.ReadFile(r.systemPath(sequenceFile))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seq sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		r.logger.Warn("id sequence is unreadable, deriving from notes", "error", err)
		return 0, nil
	}
	return seq.LastID, nil
}

func (r *Repository) bumpSequence(id int) error {
	last, err := r.readSequence()
	if err != nil {
		return err
	}
	if id <= last {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(r.dir(), r.config.SystemDir), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(sequence{LastID: id})
	if err != nil {
		return err
	}
	return writeFileAtomic(r.systemPath(sequenceFile), data, 0644)
}

// NextID returns max(id)+1 under the max policy. The sequence policy also
// takes the highest id ever saved into account so deleted ids are never reused.
func (r *Repository) NextID(ctx context.Context) (int, error) {
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	next := core.MaxID(notes) + 1

	if r.config.IDPolicy == core.IDPolicySequence {
		last, err := r.readSequence()
		if err != nil {
			return 0, core.StorageError("read id sequence", err)
		}
		next = max(next, last+1)
	}
	return next, nil
}

// AllTags returns the sorted union of every tag in the store.
func (r *Repository) AllTags(ctx context.Context) ([]string, error) {
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.CollectTags(notes), nil
}

// Add appends a note, assigning NextID when n.ID is zero.
func (r *Repository) Add(ctx context.Context, n core.Note) (core.Note, error) {
	notes, err := r.LoadAll(ctx)
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
	if indexOf(notes, n.ID) >= 0 {
		return core.Note{}, core.NewError(core.KindValidation, fmt.Sprintf("note #%d already exists", n.ID))
	}
	if _, ok := core.ChangeReason(ctx); !ok {
		ctx = core.WithChangeReason(ctx, fmt.Sprintf("add note #%d", n.ID))
	}
	if err := r.SaveAll(ctx, append(notes, n)); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Get retrieves a note by id.
func (r *Repository) Get(ctx context.Context, id int) (core.Note, bool, error) {
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return core.Note{}, false, err
	}
	if idx := indexOf(notes, id); idx >= 0 {
		return notes[idx], true, nil
	}
	return core.Note{}, false, nil
}

// Update replaces the stored note with the same id. An invalid note is
// rejected before the store is read.
func (r *Repository) Update(ctx context.Context, n core.Note) (bool, error) {
	if err := n.Validate(); err != nil {
		return false, err
	}
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(notes, n.ID)
	if idx < 0 {
		return false, nil
	}
	notes[idx] = n
	if _, ok := core.ChangeReason(ctx); !ok {
		ctx = core.WithChangeReason(ctx, fmt.Sprintf("edit note #%d", n.ID))
	}
	return true, r.SaveAll(ctx, notes)
}

// Delete removes a note by id. A missing id leaves the store untouched.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	notes, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(notes, id)
	if idx < 0 {
		return false, nil
	}
	notes = append(notes[:idx], notes[idx+1:]...)
	if _, ok := core.ChangeReason(ctx); !ok {
		ctx = core.WithChangeReason(ctx, fmt.Sprintf("delete note #%d", id))
	}
	return true, r.SaveAll(ctx, notes)
}

// Close implements core.Repository. The flat-file adapter holds no resources.
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) recordLoad(loaded, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = loaded
	r.skipped = skipped
}

func indexOf(notes []core.Note, id int) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

var _ core.Repository = (*Repository)(nil)
