package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/goldbook"
)

// Permissions is the list of exit permissions, newest first.
type Permissions struct{ s *Store }

func (p *Permissions) List(ctx context.Context) ([]goldbook.Permission, error) {
	var list []goldbook.Permission
	if _, err := p.s.load(ctx, KeyPermissions, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns the permission with id.
func (p *Permissions) Get(ctx context.Context, id string) (goldbook.Permission, error) {
	list, err := p.List(ctx)
	if err != nil {
		return goldbook.Permission{}, err
	}
	i := slices.IndexFunc(list, func(v goldbook.Permission) bool { return v.ID == id })
	if i < 0 {
		return goldbook.Permission{}, fmt.Errorf("permission %q: %w", id, goldbook.ErrNotFound)
	}
	return list[i], nil
}

// Add gives perm the next "P-" id, a PENDING status when it has none, and
// saves it in front of the list.
func (p *Permissions) Add(ctx context.Context, perm goldbook.Permission) (goldbook.Permission, error) {
	if perm.Status == "" {
		perm.Status = goldbook.Pending
	}
	if err := goldbook.Validate(perm); err != nil {
		return perm, err
	}
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if perm.ID == "" {
		id, err := p.s.Counters().nextID(ctx, goldbook.PermissionKind)
		if err != nil {
			return perm, err
		}
		perm.ID = id
	}
	return perm, p.prepend(ctx, perm)
}

func (p *Permissions) prepend(ctx context.Context, perm goldbook.Permission) error {
	list, err := p.List(ctx)
	if err != nil {
		return err
	}
	return p.s.save(ctx, KeyPermissions, append([]goldbook.Permission{perm}, list...))
}

// Delete removes the permission with id.
func (p *Permissions) Delete(ctx context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.delete(ctx, id)
}

func (p *Permissions) delete(ctx context.Context, id string) error {
	list, err := p.List(ctx)
	if err != nil {
		return err
	}
	list = slices.DeleteFunc(list, func(v goldbook.Permission) bool { return v.ID == id })
	if list == nil {
		list = []goldbook.Permission{}
	}
	return p.s.save(ctx, KeyPermissions, list)
}

// Toggle flips the status of the permission with id. The permission is
// removed and added again, so it moves to the front of the list.
func (p *Permissions) Toggle(ctx context.Context, id string) (goldbook.Permission, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	perm, err := p.Get(ctx, id)
	if err != nil {
		return perm, err
	}
	perm = perm.Toggled()
	if err := p.delete(ctx, id); err != nil {
		return perm, err
	}
	return perm, p.prepend(ctx, perm)
}
