package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rezkam/catalog/internal/domain"
)

// record is any entity carrying domain.Ordered.
type record interface {
	GetOrdered() *domain.Ordered
}

var orderedColumns = []string{"id", "owner_id", "position", "created_at", "updated_at"}

// schema maps one entity kind onto its table.
type schema[T record] struct {
	kind    string
	table   string
	parent  string // parent id column; empty for top-level kinds
	newItem func() T
	fields  func(T) []any // scan targets of the kind-specific columns

	selectSQL string
	upsertSQL string
	deleteSQL string
	orderAll  string
}

func newSchema[T record](kind, table, parent string, columns []string, newItem func() T, fields func(T) []any) *schema[T] {
	all := append(append([]string{}, orderedColumns...), columns...)

	sets := make([]string, 0, len(all))
	for _, c := range all {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, c+" = excluded."+c)
	}

	order := " ORDER BY COALESCE(owner_id, ''), position, id"
	if parent != "" {
		order = " ORDER BY COALESCE(owner_id, ''), " + parent + ", position, id"
	}

	return &schema[T]{
		kind:      kind,
		table:     table,
		parent:    parent,
		newItem:   newItem,
		fields:    fields,
		selectSQL: "SELECT " + strings.Join(all, ", ") + " FROM " + table,
		upsertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
			table,
			strings.Join(all, ", "),
			strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", "),
			strings.Join(sets, ", ")),
		deleteSQL: "DELETE FROM " + table + " WHERE id = ?",
		orderAll:  order,
	}
}

func (sc *schema[T]) targets(item T) []any {
	o := item.GetOrdered()
	return append([]any{
		&o.ID,
		(*nullString)(&o.OwnerID),
		&o.Position,
		(*dbTime)(&o.CreatedAt),
		(*dbTime)(&o.UpdatedAt),
	}, sc.fields(item)...)
}

// table implements catalog.Collection for one kind.
type table[T record] struct {
	s  *Store
	sc *schema[T]
}

func newTable[T record](s *Store, sc *schema[T]) *table[T] {
	return &table[T]{s: s, sc: sc}
}

// where joins conditions, adding the owner filter for account scopes.
func where(scope *domain.Scope, conds []string, args []any) (string, []any) {
	if scope != nil && !scope.Admin {
		conds = append(conds, "owner_id = ?")
		args = append(args, scope.AccountID)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (t *table[T]) list(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := t.s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.sc.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item := t.sc.newItem()
		if err := rows.Scan(t.sc.targets(item)...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.sc.kind, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", t.sc.table, err)
	}
	return out, nil
}

func (t *table[T]) FindAll(ctx context.Context, scope domain.Scope) ([]T, error) {
	clause, args := where(&scope, nil, nil)
	return t.list(ctx, t.sc.selectSQL+clause+t.sc.orderAll, args...)
}

func (t *table[T]) FindByParent(ctx context.Context, scope domain.Scope, parentID string) ([]T, error) {
	if t.sc.parent == "" {
		return nil, nil
	}
	clause, args := where(&scope, []string{t.sc.parent + " = ?"}, []any{parentID})
	return t.list(ctx, t.sc.selectSQL+clause+" ORDER BY position, id", args...)
}

func (t *table[T]) FindByID(ctx context.Context, scope domain.Scope, id string) (T, error) {
	clause, args := where(&scope, []string{"id = ?"}, []any{id})
	item := t.sc.newItem()
	err := t.s.queryRow(ctx, t.sc.selectSQL+clause, args...).Scan(t.sc.targets(item)...)
	if err != nil {
		var zero T
		return zero, translateError(err, t.sc.kind, id)
	}
	return item, nil
}

func (t *table[T]) FindSiblings(ctx context.Context, ownerID, parentID string) ([]T, error) {
	conds := []string{"COALESCE(owner_id, '') = ?"}
	args := []any{ownerID}
	if t.sc.parent != "" {
		conds = append(conds, t.sc.parent+" = ?")
		args = append(args, parentID)
	}
	clause, args := where(nil, conds, args)
	return t.list(ctx, t.sc.selectSQL+clause+" ORDER BY position, id", args...)
}

func (t *table[T]) Save(ctx context.Context, items ...T) error {
	for _, item := range items {
		o := item.GetOrdered()
		if o.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate %s id: %w", t.sc.kind, err)
			}
			o.ID = id.String()
		}
		if _, err := t.s.exec(ctx, t.sc.upsertSQL, values(t.sc.targets(item))...); err != nil {
			return translateError(err, t.sc.kind, o.ID)
		}
	}
	return nil
}

func (t *table[T]) Delete(ctx context.Context, id string) error {
	result, err := t.s.exec(ctx, t.sc.deleteSQL, id)
	if err != nil {
		return translateError(err, t.sc.kind, id)
	}
	return checkRowsAffected(result, t.sc.kind, id)
}
