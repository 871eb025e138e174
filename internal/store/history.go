package store

import (
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/stylesyncapp/stylesync-server/internal/domain"
)

// historyPrefix namespaces rule change entries. Keys embed a zero-padded
// nanosecond timestamp so lexical order equals chronological order, which
// lets reverse iteration serve newest-first pages without sorting.
const historyPrefix = "rulechange:"

// historyKey builds the database key for one change entry.
func historyKey(entry *domain.RuleChangeEntry) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", historyPrefix, entry.Timestamp.UnixNano(), entry.ID))
}

// ListHistory returns change entries newest-first. Entries are append-only:
// this read never mutates state.
func (s *Store) ListHistory(ctx context.Context, params PaginationParams) (*PaginatedResult[domain.RuleChangeEntry], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Validate()

	startKey, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, ErrInvalidInput.WithCause(err)
	}

	result := &PaginatedResult[domain.RuleChangeEntry]{
		Items: []domain.RuleChangeEntry{},
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(historyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Position past the end of the prefix range for the first page, or
		// at the cursor for subsequent pages. The cursor key was already
		// returned on the previous page, so it is skipped.
		if startKey == "" {
			it.Seek(append([]byte(historyPrefix), 0xFF))
		} else {
			it.Seek([]byte(startKey))
			if it.Valid() && string(it.Item().Key()) == startKey {
				it.Next()
			}
		}

		var lastKey string
		for ; it.Valid() && len(result.Items) < params.Limit; it.Next() {
			item := it.Item()
			var entry domain.RuleChangeEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return fmt.Errorf("unmarshal change entry %s: %w", item.Key(), err)
			}
			result.Items = append(result.Items, entry)
			lastKey = string(item.Key())
		}

		if it.Valid() {
			result.HasMore = true
			result.NextCursor = EncodeCursor(lastKey)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountHistory returns the total number of change entries. Values are not
// fetched, only keys are walked.
func (s *Store) CountHistory(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(historyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
