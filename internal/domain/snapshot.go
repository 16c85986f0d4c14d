package domain

import "github.com/DRSN-tech/storefront/pkg/e"

// Rejected — запись, отброшенная при сборке снимка, и причина.
type Rejected struct {
	ID  string
	Err error
}

// BuildSnapshot собирает упорядоченный снимок из записей хранилища.
// Записи, нарушающие инварианты, и повторы уже встреченного ID пропускаются,
// порядок остальных сохраняется.
func BuildSnapshot(records []Product) ([]Product, []Rejected) {
	snapshot := make([]Product, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var rejected []Rejected

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			rejected = append(rejected, Rejected{ID: rec.ID, Err: err})
			continue
		}

		if _, ok := seen[rec.ID]; ok {
			rejected = append(rejected, Rejected{ID: rec.ID, Err: e.ErrDuplicateProduct})
			continue
		}
		seen[rec.ID] = struct{}{}
		snapshot = append(snapshot, rec)
	}

	return snapshot, rejected
}
