package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo keeps feedback in process memory. It backs deployments that
// run without a database and the handler tests.
type memoryRepo struct {
	mu    sync.RWMutex
	items []*Feedback
}

func NewMemoryRepo() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, f *Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = uuid.New()
	f.CreatedAt = time.Now().UTC()
	stored := *f
	// Newest first, matching the SQL repository's ordering.
	r.items = append([]*Feedback{&stored}, r.items...)
	return nil
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]*Feedback, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.items)
	if offset >= total {
		return []*Feedback{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*Feedback, end-offset)
	for i, f := range r.items[offset:end] {
		copied := *f
		out[i] = &copied
	}
	return out, total, nil
}

func (r *memoryRepo) Stats(_ context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &Stats{ByCategory: make(map[string]int), Recent: []*Feedback{}}
	var sum int
	for _, f := range r.items {
		stats.Total++
		sum += f.Rating
		stats.ByCategory[f.Category]++
	}
	if stats.Total > 0 {
		stats.AverageRating = float64(sum) / float64(stats.Total)
	}
	for _, f := range r.items {
		if len(stats.Recent) == recentStatsCount {
			break
		}
		copied := *f
		stats.Recent = append(stats.Recent, &copied)
	}
	return stats, nil
}
