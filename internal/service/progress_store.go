package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

type ProgressInfo struct {
	FileName     string    `json:"fileName"`
	TotalRecords int       `json:"totalRecords"`
	Processed    int       `json:"processed"`
	Imported     int       `json:"imported"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

func (p ProgressInfo) Finished() bool {
	return p.Status == StatusCompleted || p.Status == StatusError
}

// ProgressStore keeps one ProgressInfo per imported file name.
// Get returns nil, nil for unknown names.
type ProgressStore interface {
	Save(ctx context.Context, p ProgressInfo) error
	Get(ctx context.Context, fileName string) (*ProgressInfo, error)
	List(ctx context.Context) ([]ProgressInfo, error)
	Delete(ctx context.Context, fileName string) error
}

type MemoryProgressStore struct {
	mu       sync.RWMutex
	progress map[string]ProgressInfo
}

func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{progress: make(map[string]ProgressInfo)}
}

func (m *MemoryProgressStore) Save(ctx context.Context, p ProgressInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[p.FileName] = p
	return nil
}

func (m *MemoryProgressStore) Get(ctx context.Context, fileName string) (*ProgressInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[fileName]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryProgressStore) List(ctx context.Context) ([]ProgressInfo, error) {
	m.mu.RLock()
	res := make([]ProgressInfo, 0, len(m.progress))
	for _, p := range m.progress {
		res = append(res, p)
	}
	m.mu.RUnlock()
	sortProgress(res)
	return res, nil
}

func (m *MemoryProgressStore) Delete(ctx context.Context, fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.progress, fileName)
	return nil
}

const progressKey = "import:progress"

// RedisProgressStore shares progress between API replicas in a single hash
// keyed by file name.
type RedisProgressStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisProgressStore(client redis.Cmdable) *RedisProgressStore {
	return &RedisProgressStore{client: client, key: progressKey}
}

func (r *RedisProgressStore) Save(ctx context.Context, p ProgressInfo) error {
	val, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := r.client.HSet(ctx, r.key, p.FileName, val).Err(); err != nil {
		return fmt.Errorf("save progress %s: %w", p.FileName, err)
	}
	return nil
}

func (r *RedisProgressStore) Get(ctx context.Context, fileName string) (*ProgressInfo, error) {
	val, err := r.client.HGet(ctx, r.key, fileName).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress %s: %w", fileName, err)
	}
	var p ProgressInfo
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("decode progress %s: %w", fileName, err)
	}
	return &p, nil
}

func (r *RedisProgressStore) List(ctx context.Context) ([]ProgressInfo, error) {
	vals, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	res := make([]ProgressInfo, 0, len(vals))
	for name, val := range vals {
		var p ProgressInfo
		if err := json.Unmarshal([]byte(val), &p); err != nil {
			return nil, fmt.Errorf("decode progress %s: %w", name, err)
		}
		res = append(res, p)
	}
	sortProgress(res)
	return res, nil
}

func (r *RedisProgressStore) Delete(ctx context.Context, fileName string) error {
	if err := r.client.HDel(ctx, r.key, fileName).Err(); err != nil {
		return fmt.Errorf("delete progress %s: %w", fileName, err)
	}
	return nil
}

func sortProgress(res []ProgressInfo) {
	sort.Slice(res, func(i, j int) bool {
		if !res[i].StartTime.Equal(res[j].StartTime) {
			return res[i].StartTime.Before(res[j].StartTime)
		}
		return res[i].FileName < res[j].FileName
	})
}
