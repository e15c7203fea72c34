package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// loadTargets fetches the rows named by keys so they can be linked, failing
// with ErrNotFound when any key is missing.
func loadTargets[T any, K comparable](ctx context.Context, db *gorm.DB, query string, keys []K) ([]T, error) {
	keys = distinct(keys)
	if len(keys) == 0 {
		return nil, nil
	}
	var rows []T
	if err := db.WithContext(ctx).Where(query, keys).Find(&rows).Error; err != nil {
		return nil, translateError("load link targets", err)
	}
	if len(rows) != len(keys) {
		return nil, fmt.Errorf("load link targets: found %d of %d: %w", len(rows), len(keys), ErrNotFound)
	}
	return rows, nil
}

// appendLinks adds many-to-many rows between owner and targets. Existing
// links are left alone.
func appendLinks[T any](ctx context.Context, db *gorm.DB, owner any, relation string, targets []T) error {
	if len(targets) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Model(owner).Association(relation).Append(&targets)
	return translateError("link "+relation, err)
}

func distinct[K comparable](keys []K) []K {
	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
