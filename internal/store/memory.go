package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryArticleRepo is an in-memory ArticleRepo for tests and for
// hosts that opt out of persistence. Same cap-and-evict semantics as
// the SQLite repo.
type MemoryArticleRepo struct {
	mu      sync.Mutex
	entries []UsedArticle
	Max     int
}

// NewMemoryArticleRepo creates a memory repo with the default cap.
func NewMemoryArticleRepo() *MemoryArticleRepo {
	return &MemoryArticleRepo{Max: MaxStoredArticles}
}

func (m *MemoryArticleRepo) ForCategory(_ context.Context, category string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var topics []string
	for _, e := range m.entries {
		if strings.EqualFold(e.Category, category) {
			topics = append(topics, e.Topic)
		}
	}
	return topics, nil
}

func (m *MemoryArticleRepo) AddBatch(_ context.Context, entries []UsedArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entries...)
	if m.Max > 0 && len(m.entries) > m.Max {
		m.entries = m.entries[len(m.entries)-m.Max:]
	}
	return nil
}

func (m *MemoryArticleRepo) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func (m *MemoryArticleRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), nil
}

// Entries returns a copy of the retained entries, oldest first.
func (m *MemoryArticleRepo) Entries() []UsedArticle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]UsedArticle, len(m.entries))
	copy(out, m.entries)
	return out
}

// NopEventRepo discards all events. Used where no database is open.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error { return nil }
func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) {
	return nil, nil
}
func (NopEventRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error)  { return nil, nil }
func (NopEventRepo) LLMUsageByPurpose(context.Context) ([]UsageStat, error) { return nil, nil }
