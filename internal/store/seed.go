package store

import "context"

// SeedSampleData inserts a small demo sheet on first run so the editor does
// not open onto an empty grid. No-op when rows already exist.
func (s *SheetStore) SeedSampleData(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []map[string]string{
		{"item": "Apples", "qty": "12", "price": "0.50", "note": "fuji"},
		{"item": "Bananas", "qty": "6", "price": "0.25", "note": ""},
		{"item": "Coffee", "qty": "2", "price": "14.90", "note": "beans, 1kg"},
		{"item": "Milk", "qty": "4", "price": "1.80", "note": ""},
		{"item": "Bread", "qty": "1", "price": "3.20", "note": "sourdough"},
	}
	for _, cells := range samples {
		if _, err := s.InsertRow(ctx, cells); err != nil {
			return err
		}
	}
	return nil
}
