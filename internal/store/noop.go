package store

import "context"

// NoopStore discards all writes and returns empty reads. Used when
// persistence is disabled in config.
type NoopStore struct{}

func (s *NoopStore) Create(ctx context.Context, t *Team) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}

func (s *NoopStore) Get(ctx context.Context, id string) (*Team, error) { return nil, nil }

func (s *NoopStore) GetByName(ctx context.Context, name string) (*Team, error) { return nil, nil }

func (s *NoopStore) Update(ctx context.Context, t *Team) error { return nil }

func (s *NoopStore) Delete(ctx context.Context, id string) error { return nil }

func (s *NoopStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	return nil, nil
}

func (s *NoopStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return nil, nil
}

func (s *NoopStore) Close() error { return nil }
