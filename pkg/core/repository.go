package core

import (
	"context"
	"slices"
)

// Repository defines the contract for storing and retrieving the note
// collection. Adhering to this interface keeps the core independent of the
// underlying storage mechanism (flat file, SQLite).
type Repository interface {
	// Initialize ensures the underlying storage is ready (directories, empty store, schema migration).
	Initialize(ctx context.Context) error

	// LoadAll returns every persisted note. Malformed records are skipped
	// unless the adapter runs in strict mode.
	LoadAll(ctx context.Context) ([]Note, error)

	// SaveAll atomically replaces the whole persisted collection.
	SaveAll(ctx context.Context, notes []Note) error

	// NextID returns the id the next created note should receive.
	NextID(ctx context.Context) (int, error)

	// AllTags returns the sorted, de-duplicated union of every tag.
	AllTags(ctx context.Context) ([]string, error)

	// Add persists a single note. A zero ID is replaced by NextID.
	Add(ctx context.Context, n Note) (Note, error)

	// Get retrieves a note by id. The boolean is false when no note matches.
	Get(ctx context.Context, id int) (Note, bool, error)

	// Update replaces the stored note with the same id. It reports false when
	// no such note exists.
	Update(ctx context.Context, n Note) (bool, error)

	// Delete removes a note by id. It reports false when no such note exists.
	Delete(ctx context.Context, id int) (bool, error)

	// Close releases any resource held by the adapter.
	Close() error
}

// IDPolicy selects how NextID derives new ids.
type IDPolicy string

const (
	// IDPolicyMax derives the next id from the highest live id, so the id of
	// a deleted highest note is handed out again.
	IDPolicyMax IDPolicy = "max"
	// IDPolicySequence persists the last issued id next to the collection and
	// never reuses an id.
	IDPolicySequence IDPolicy = "sequence"
)

// ParseIDPolicy converts a configuration token into an IDPolicy. An empty
// token selects IDPolicyMax.
func ParseIDPolicy(token string) (IDPolicy, error) {
	switch p := IDPolicy(normalizeToken(token)); p {
	case "":
		return IDPolicyMax, nil
	case IDPolicyMax, IDPolicySequence:
		return p, nil
	default:
		return "", invalidValue("id policy", token, []string{string(IDPolicyMax), string(IDPolicySequence)})
	}
}

type contextKey string

// ChangeReasonKey is the context key carrying a human readable description of
// a mutation. Versioning adapters use it as the commit message.
const ChangeReasonKey contextKey = "change_reason"

// WithChangeReason returns a copy of ctx carrying reason.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ChangeReasonKey, reason)
}

// ChangeReason extracts the change reason from ctx, if any.
func ChangeReason(ctx context.Context) (string, bool) {
	reason, ok := ctx.Value(ChangeReasonKey).(string)
	return reason, ok && reason != ""
}

// MaxID returns the highest id in notes, or 0 when notes is empty.
func MaxID(notes []Note) int {
	highest := 0
	for _, n := range notes {
		if n.ID > highest {
			highest = n.ID
		}
	}
	return highest
}

// CollectTags returns the sorted, de-duplicated union of the tags of notes.
func CollectTags(notes []Note) []string {
	seen := make(map[string]struct{})
	for _, n := range notes {
		for _, tag := range n.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
