package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/pkg/apperrors"
	"github.com/yigit/degreeplan/internal/pkg/logger"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_Fetch(t *testing.T) {
	var got Request
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, recommendPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[
			{"course_code":"SOC 210","title":"Urban Sociology","description":"Cities","score":0.9},
			{"course_code":"SOC 101","title":"Intro","description":"Basics","score":0.4}
		]}`))
	})

	recs, err := NewHTTPClient(srv.URL+"/", time.Second).Fetch(context.Background(), Request{
		Passed:     []string{"ENG 101"},
		Candidates: []string{"SOC 101", "SOC 210"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ENG 101"}, got.Passed)
	assert.Equal(t, []string{"SOC 101", "SOC 210"}, got.Candidates)
	require.Len(t, recs, 2)
	assert.Equal(t, models.Recommendation{CourseCode: "SOC 210", Title: "Urban Sociology", Description: "Cities", Score: 0.9}, recs[0])
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"recommendations": [`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"recommendations": []}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.handler)
			_, err := NewHTTPClient(srv.URL, 50*time.Millisecond).Fetch(context.Background(), Request{Candidates: []string{"X 101"}})
			assert.ErrorIs(t, err, apperrors.ErrRecommendationUnavailable)
		})
	}
}

type sourceFunc func(ctx context.Context, req Request) ([]models.Recommendation, error)

func (f sourceFunc) Fetch(ctx context.Context, req Request) ([]models.Recommendation, error) {
	return f(ctx, req)
}

func TestClient_RanksAndFilters(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, req Request) ([]models.Recommendation, error) {
		return []models.Recommendation{
			{CourseCode: "ART 150", Score: 0.2},
			{CourseCode: "NOT 999", Score: 0.99},
			{CourseCode: "MUS 120", Score: 0.8},
			{CourseCode: "ART 150", Score: 0.1},
		}, nil
	})

	recs := NewClient(src, time.Second, logger.Nop()).Recommend(context.Background(), nil, []string{"ART 150", "MUS 120"})
	require.Len(t, recs, 2)
	assert.Equal(t, "MUS 120", recs[0].CourseCode)
	assert.Equal(t, "ART 150", recs[1].CourseCode)
	assert.Equal(t, 0.2, recs[1].Score)
}

func TestClient_DegradesToEmpty(t *testing.T) {
	failing := sourceFunc(func(ctx context.Context, req Request) ([]models.Recommendation, error) {
		return nil, errors.New("connection refused")
	})
	assert.Empty(t, NewClient(failing, time.Second, logger.Nop()).Recommend(context.Background(), nil, []string{"ART 150"}))

	blocking := sourceFunc(func(ctx context.Context, req Request) ([]models.Recommendation, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	start := time.Now()
	assert.Empty(t, NewClient(blocking, 20*time.Millisecond, logger.Nop()).Recommend(context.Background(), nil, []string{"ART 150"}))
	assert.Less(t, time.Since(start), time.Second)

	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := NewClient(NewHTTPClient(srv.URL, time.Second), time.Second, logger.Nop())
	assert.Empty(t, client.Recommend(context.Background(), nil, []string{"ART 150"}))

	assert.Empty(t, Disabled().Recommend(context.Background(), nil, []string{"ART 150"}))
}

func TestClient_SkipsEmptyCandidateList(t *testing.T) {
	called := false
	src := sourceFunc(func(ctx context.Context, req Request) ([]models.Recommendation, error) {
		called = true
		return nil, nil
	})
	assert.Empty(t, NewClient(src, time.Second, logger.Nop()).Recommend(context.Background(), []string{"ENG 101"}, nil))
	assert.False(t, called)
}

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	data, ok := m.values[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	m.ttls[key] = ttl
	return nil
}

func TestCachedClient(t *testing.T) {
	calls := 0
	fail := false
	src := sourceFunc(func(ctx context.Context, req Request) ([]models.Recommendation, error) {
		calls++
		if fail {
			return nil, apperrors.ErrRecommendationUnavailable
		}
		return []models.Recommendation{{CourseCode: req.Candidates[0], Score: 1}}, nil
	})
	cache := newMemoryCache()
	cached := NewCachedClient(src, cache, time.Minute, logger.Nop())
	ctx := context.Background()

	first, err := cached.Fetch(ctx, Request{Passed: []string{"A 1", "B 2"}, Candidates: []string{"C 3"}})
	require.NoError(t, err)
	second, err := cached.Fetch(ctx, Request{Passed: []string{"B 2", "A 1"}, Candidates: []string{"C 3"}})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, time.Minute, cache.ttls[CacheKey(Request{Passed: []string{"A 1", "B 2"}, Candidates: []string{"C 3"}})])

	fail = true
	_, err = cached.Fetch(ctx, Request{Candidates: []string{"D 4"}})
	assert.Error(t, err)
	assert.Len(t, cache.values, 1, "failures are not cached")

	fail = false
	cache.getErr = errors.New("redis down")
	recs, err := cached.Fetch(ctx, Request{Candidates: []string{"E 5"}})
	require.NoError(t, err)
	assert.Equal(t, "E 5", recs[0].CourseCode)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(Request{Passed: []string{"X"}, Candidates: []string{"Y", "Z"}})
	assert.Equal(t, a, CacheKey(Request{Passed: []string{"X"}, Candidates: []string{"Z", "Y"}}))
	assert.NotEqual(t, a, CacheKey(Request{Passed: []string{"X", "Y"}, Candidates: []string{"Z"}}))
	assert.Contains(t, a, KeyPrefix)
}
