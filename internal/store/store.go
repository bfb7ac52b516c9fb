// Package store persists wellflow records as opaque JSON values under fixed keys.
package store

import (
	"fmt"
	"strings"
)

// Record keys. Each record loads and saves independently.
const (
	KeyProfile      = "profile"
	KeyLogs         = "logs"
	KeyFastingLogs  = "fasting_logs"
	KeyFastingState = "fasting_state"
	KeyLastReset    = "last_reset"
)

// Keys lists every record key in a stable order.
var Keys = []string{KeyProfile, KeyLogs, KeyFastingLogs, KeyFastingState, KeyLastReset}

// Record is a single key/value pair written as part of a batch.
type Record struct {
	Key   string
	Value []byte
}

// Store is a key-value store with load/save semantics. Get reports found=false
// for a key that was never written.
type Store interface {
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	// PutBatch writes all records or none of them.
	PutBatch(records []Record) error
	Delete(key string) error
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", fmt.Errorf("record key is required")
	}
	return key, nil
}
