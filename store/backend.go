// Package store persists the shop collections in a flat key-value backend
// and exposes one repository per collection.
package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

// Backend is a flat key-value storage. Values are JSON documents.
type Backend interface {
	// Get returns the value of key, ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keys of the shop collections.
const (
	KeyTransactions = "pg_transactions"
	KeyEmployees    = "pg_employees"
	KeyPartners     = "pg_partners"
	KeySettings     = "pg_settings"
	KeyPermissions  = "pg_permissions"
	KeyUsers        = "pg_users"
	KeyCounters     = "pg_counters"
)

// OpenBackend opens a backend from a location of the form "<scheme>:<dsn>":
//
//	dir:./shop            one JSON file per key in a folder
//	sqlite:shop.db        a kv_entries table in a sqlite file
//	postgres:<dsn>        a kv_entries table in postgres
//	redis://host:6379/0   a redis database
//	mem:                  in memory, lost on exit
//
// A location without a known scheme is a folder.
func OpenBackend(location string) (Backend, error) {
	scheme, rest, _ := strings.Cut(location, ":")
	switch scheme {
	case "dir":
		return NewDirBackend(rest), nil
	case "sqlite":
		return OpenSQL(sqlite.Open(rest))
	case "postgres", "postgresql":
		if strings.HasPrefix(rest, "//") {
			rest = location // keep postgres:// URLs whole
		}
		return OpenSQL(postgres.Open(rest))
	case "redis", "rediss":
		return OpenRedis(location)
	case "mem":
		return NewMemBackend(), nil
	default:
		if location == "" {
			return nil, fmt.Errorf("empty store location")
		}
		return NewDirBackend(location), nil
	}
}
