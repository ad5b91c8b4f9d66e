package mystore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

// inMemoryTxKey is unique per store so transactions of different stores do not interfere
type inMemoryTxKey struct {
	store any
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Nested transactions share the outer lock
	if s.inTransaction(c) {
		return f(c)
	}

	// Start transaction
	s.Lock()
	defer s.Unlock()

	ctx := context.WithValue(c, inMemoryTxKey{store: s}, true)

	// Writes of a failed transaction are undone
	snapshot := maps.Clone(s.Items)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {
		clear(s.Items)
		maps.Copy(s.Items, snapshot)
		return err
	}

	return nil
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	return c.Value(inMemoryTxKey{store: s}) != nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	return result, nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := []T{}
	for _, v := range all {
		matches, err := matchesAll(v, filters)
		if err != nil {
			return nil, err
		}
		if matches {
			result = append(result, v)
		}
	}

	if orderByField != "" {
		err = sortByField(result, orderByField)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func matchesAll[T any](value T, filters []Filter) (bool, error) {
	for _, f := range filters {
		fieldValue, err := fieldByName(value, f.Field)
		if err != nil {
			return false, err
		}
		matches, err := evaluate(fieldValue, f.Compare, f.Value)
		if err != nil {
			return false, fmt.Errorf("error evaluating filter on field %s: %s", f.Field, err)
		}
		if !matches {
			return false, nil
		}
	}
	return true, nil
}

func sortByField[T any](values []T, fieldName string) error {
	descending := false
	if len(fieldName) > 0 && fieldName[0] == '-' {
		descending = true
		fieldName = fieldName[1:]
	}

	var sortErr error
	sort.SliceStable(values, func(i, j int) bool {
		left, err := fieldByName(values[i], fieldName)
		if err != nil {
			sortErr = err
			return false
		}
		right, err := fieldByName(values[j], fieldName)
		if err != nil {
			sortErr = err
			return false
		}
		cmp, err := compare(left, right)
		if err != nil {
			sortErr = err
			return false
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return sortErr
}
