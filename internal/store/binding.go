package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/gesture"
)

// Binding is one persisted gesture-to-command mapping.
type Binding struct {
	ID        string
	Gesture   gesture.Label
	Kind      action.Kind
	Key       string
	Button    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Command returns the action command this binding fires. Only key and
// click bindings exist; cursor moves are synthesized by the pointer
// gesture and never persisted.
func (b *Binding) Command() action.Command {
	return action.Command{
		Kind:   b.Kind,
		Key:    b.Key,
		Button: b.Button,
	}
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding into the database.
func (r *BindingRepository) Create(b *Binding) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO bindings (id, gesture, kind, key, button, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, string(b.Gesture), string(b.Kind), b.Key, b.Button, b.Enabled, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, gesture, kind, key, button, enabled, created_at, updated_at
		 FROM bindings WHERE id = ?`,
		id,
	))
}

// GetByGesture retrieves the binding for a gesture label.
// Returns nil, nil if the gesture has no binding.
func (r *BindingRepository) GetByGesture(label gesture.Label) (*Binding, error) {
	b, err := r.scanOne(r.db.QueryRow(
		`SELECT id, gesture, kind, key, button, enabled, created_at, updated_at
		 FROM bindings WHERE gesture = ?`,
		string(label),
	))
	if errors.Is(err, ErrNotFound) {
		return nil, nil // no binding for this gesture
	}
	return b, err
}

// List retrieves all bindings ordered by gesture label.
func (r *BindingRepository) List() ([]*Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, kind, key, button, enabled, created_at, updated_at
		 FROM bindings ORDER BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []*Binding
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bindings, nil
}

// Table assembles the enabled bindings into the dispatcher's policy
// table.
func (r *BindingRepository) Table() (action.Bindings, error) {
	bindings, err := r.List()
	if err != nil {
		return nil, err
	}

	table := make(action.Bindings, len(bindings))
	for _, b := range bindings {
		if !b.Enabled {
			continue
		}
		table[b.Gesture] = b.Command()
	}
	return table, nil
}

// Update updates an existing binding in the database.
func (r *BindingRepository) Update(b *Binding) error {
	b.UpdatedAt = time.Now()

	enabled := 0
	if b.Enabled {
		enabled = 1
	}

	result, err := r.db.Exec(
		`UPDATE bindings SET gesture = ?, kind = ?, key = ?, button = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		string(b.Gesture), string(b.Kind), b.Key, b.Button, enabled, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a binding from the database by its ID.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BindingRepository) scan(row rowScanner) (*Binding, error) {
	b := &Binding{}
	var label, kind string
	var enabled int

	err := row.Scan(&b.ID, &label, &kind, &b.Key, &b.Button, &enabled, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	b.Gesture = gesture.Label(label)
	b.Kind = action.Kind(kind)
	b.Enabled = enabled != 0
	return b, nil
}

func (r *BindingRepository) scanOne(row *sql.Row) (*Binding, error) {
	b, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
