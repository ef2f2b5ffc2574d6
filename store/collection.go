package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/goldbook"
	"github.com/google/uuid"
)

// collection is a list of records identified by a string id, appended at
// the end.
type collection[T any] struct {
	s    *Store
	key  string
	id   func(*T) *string
	seed func() []T // value of an absent key
}

// List returns every record.
func (c collection[T]) List(ctx context.Context) ([]T, error) {
	var list []T
	ok, err := c.s.load(ctx, c.key, &list)
	if err != nil {
		return nil, err
	}
	if !ok && c.seed != nil {
		list = c.seed()
	}
	return list, nil
}

// Get returns the record with id.
func (c collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	list, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	i := c.index(list, id)
	if i < 0 {
		return zero, fmt.Errorf("%s %q: %w", c.key, id, goldbook.ErrNotFound)
	}
	return list[i], nil
}

func (c collection[T]) index(list []T, id string) int {
	return slices.IndexFunc(list, func(v T) bool { return *c.id(&v) == id })
}

// Add validates and appends a record. A record without id gets a random one.
// It returns the stored record.
func (c collection[T]) Add(ctx context.Context, v T) (T, error) {
	if err := goldbook.Validate(v); err != nil {
		return v, err
	}
	if id := c.id(&v); *id == "" {
		*id = uuid.NewString()
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	list, err := c.List(ctx)
	if err != nil {
		return v, err
	}
	return v, c.s.save(ctx, c.key, append(list, v))
}

// Update replaces the record with the same id.
func (c collection[T]) Update(ctx context.Context, v T) error {
	if err := goldbook.Validate(v); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	list, err := c.List(ctx)
	if err != nil {
		return err
	}
	id := *c.id(&v)
	i := c.index(list, id)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", c.key, id, goldbook.ErrNotFound)
	}
	list[i] = v
	return c.s.save(ctx, c.key, list)
}

// Delete removes the record with id. Removing an unknown id is a no-op.
func (c collection[T]) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	list, err := c.List(ctx)
	if err != nil {
		return err
	}
	list = slices.DeleteFunc(list, func(v T) bool { return *c.id(&v) == id })
	if list == nil {
		list = []T{}
	}
	return c.s.save(ctx, c.key, list)
}

// Employees is the staff repository.
type Employees struct{ collection[goldbook.Employee] }

// Partners is the partners repository.
type Partners struct{ collection[goldbook.Partner] }

// Users is the accounts repository. An empty store has the default admin.
type Users struct{ collection[goldbook.User] }

// Authenticate returns the user with these credentials.
func (u *Users) Authenticate(ctx context.Context, username, password string) (goldbook.User, error) {
	list, err := u.List(ctx)
	if err != nil {
		return goldbook.User{}, err
	}
	i := find(list, username, password)
	if i < 0 {
		return goldbook.User{}, goldbook.ErrInvalidCredentials
	}
	return list[i], nil
}

// Login checks the credentials and records the login time.
func (u *Users) Login(ctx context.Context, username, password string) (goldbook.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	list, err := u.List(ctx)
	if err != nil {
		return goldbook.User{}, err
	}
	i := find(list, username, password)
	if i < 0 {
		return goldbook.User{}, goldbook.ErrInvalidCredentials
	}
	list[i] = list[i].Touch(u.s.now())
	if err := u.s.save(ctx, u.key, list); err != nil {
		return goldbook.User{}, err
	}
	u.s.log.WithField("user", username).Info("login")
	return list[i], nil
}

func find(users []goldbook.User, username, password string) int {
	return slices.IndexFunc(users, func(v goldbook.User) bool {
		return v.Username == username && v.Password == password
	})
}
