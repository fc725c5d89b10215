package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryRepository keeps documents in process. It backs STORE_DRIVER=memory
// for local runs and the handler tests. Filters support top-level equality only.
type MemoryRepository[T any] struct {
	mu     sync.RWMutex
	docs   map[bson.ObjectID]bson.M
	order  []bson.ObjectID
	unique []string
}

func NewMemoryRepository[T any](uniqueFields ...string) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		docs:   make(map[bson.ObjectID]bson.M),
		unique: uniqueFields,
	}
}

func (r *MemoryRepository[T]) Find(_ context.Context, q Query) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(q.Filter)
	if len(q.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, key := range q.Sort {
				c := compareValues(matched[i][key.Key], matched[j][key.Key])
				if c == 0 {
					continue
				}
				if direction(key.Value) < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if q.Skip > 0 {
		if q.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	items := make([]T, 0, len(matched))
	for _, m := range matched {
		doc, err := decode[T](m)
		if err != nil {
			return nil, err
		}
		items = append(items, *doc)
	}
	return items, nil
}

func (r *MemoryRepository[T]) Count(_ context.Context, filter bson.M) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryRepository[T]) FindByID(_ context.Context, id bson.ObjectID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return decode[T](m)
}

func (r *MemoryRepository[T]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.matching(filter)
	if len(matched) == 0 {
		return nil, ErrNotFound
	}
	return decode[T](matched[0])
}

func (r *MemoryRepository[T]) Insert(_ context.Context, doc *T) error {
	m, err := encode(doc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.insertLocked(m)
	return err
}

func (r *MemoryRepository[T]) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := bson.M{}
	for k, v := range current {
		next[k] = v
	}
	for k, v := range set {
		next[k] = v
	}
	normalized, err := normalize(next)
	if err != nil {
		return nil, err
	}
	if err := r.checkUnique(normalized, id); err != nil {
		return nil, err
	}
	r.docs[id] = normalized
	return decode[T](normalized)
}

func (r *MemoryRepository[T]) Toggle(_ context.Context, id bson.ObjectID, field string, implied ...string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	current, _ := m[field].(bool)
	m[field] = !current
	if !current {
		for _, f := range implied {
			m[f] = true
		}
	}
	return decode[T](m)
}

func (r *MemoryRepository[T]) Increment(_ context.Context, id bson.ObjectID, field string, by int) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	current, ok := toFloat(m[field])
	if !ok && m[field] != nil {
		return nil, fmt.Errorf("cannot increment non-numeric field %q", field)
	}
	m[field] = int64(current) + int64(by)
	return decode[T](m)
}

func (r *MemoryRepository[T]) DeleteByID(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository[T]) FindOneOrInsert(_ context.Context, filter bson.M, defaults *T) (*T, error) {
	m, err := encode(defaults)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if matched := r.matching(filter); len(matched) > 0 {
		return decode[T](matched[0])
	}
	for k, v := range filter {
		m[k] = v
	}
	if m, err = normalize(m); err != nil {
		return nil, err
	}
	stored, err := r.insertLocked(m)
	if err != nil {
		return nil, err
	}
	return decode[T](stored)
}

func (r *MemoryRepository[T]) insertLocked(m bson.M) (bson.M, error) {
	id, ok := m["_id"].(bson.ObjectID)
	if !ok || id.IsZero() {
		id = bson.NewObjectID()
		m["_id"] = id
	}
	if _, exists := r.docs[id]; exists {
		return nil, ErrDuplicateKey
	}
	if err := r.checkUnique(m, id); err != nil {
		return nil, err
	}
	r.docs[id] = m
	r.order = append(r.order, id)
	return m, nil
}

func (r *MemoryRepository[T]) checkUnique(m bson.M, self bson.ObjectID) error {
	for _, field := range r.unique {
		if m[field] == nil {
			continue
		}
		for id, other := range r.docs {
			if id != self && compareValues(other[field], m[field]) == 0 {
				return fmt.Errorf("%w: %s", ErrDuplicateKey, field)
			}
		}
	}
	return nil
}

func (r *MemoryRepository[T]) matching(filter bson.M) []bson.M {
	out := make([]bson.M, 0, len(r.order))
	for _, id := range r.order {
		m := r.docs[id]
		if matches(m, filter) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m bson.M, filter bson.M) bool {
	for k, want := range filter {
		if compareValues(m[k], want) != 0 {
			return false
		}
	}
	return true
}

func encode(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func normalize(m bson.M) (bson.M, error) {
	return encode(m)
}

func decode[T any](m bson.M) (*T, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func direction(v any) int {
	if f, ok := toFloat(v); ok && f < 0 {
		return -1
	}
	return 1
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// compareValues orders the scalar values found in decoded documents.
// Missing values sort first, like null does in mongo.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp3(fa < fb, fa > fb)
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp3(av < bv, av > bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp3(!av && bv, av && !bv)
		}
	case bson.ObjectID:
		if bv, ok := b.(bson.ObjectID); ok {
			as, bs := av.Hex(), bv.Hex()
			return cmp3(as < bs, as > bs)
		}
	case bson.DateTime:
		return compareTimes(av.Time(), b)
	case time.Time:
		return compareTimes(av, b)
	}
	return cmp3(fmt.Sprint(a) < fmt.Sprint(b), fmt.Sprint(a) > fmt.Sprint(b))
}

func compareTimes(a time.Time, b any) int {
	var bt time.Time
	switch bv := b.(type) {
	case bson.DateTime:
		bt = bv.Time()
	case time.Time:
		bt = bv
	default:
		return -1
	}
	return cmp3(a.Before(bt), a.After(bt))
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
