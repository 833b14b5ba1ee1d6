package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryIndexRanksByCosine(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()
	require.NoError(t, idx.Upsert(ctx,
		[]Passage{{ID: "a", Text: "tenancy"}, {ID: "b", Text: "theft"}, {ID: "c", Text: "wages"}},
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0.9, 0.1, 0}},
	))

	got, err := idx.Search(ctx, []float64{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
}

func TestMemoryIndexUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()
	require.NoError(t, idx.Upsert(ctx, []Passage{{ID: "a", Text: "old"}}, [][]float64{{1}}))
	require.NoError(t, idx.Upsert(ctx, []Passage{{ID: "a", Text: "new"}}, [][]float64{{1}}))

	got, err := idx.Search(ctx, []float64{1}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Text)
	assert.Equal(t, 1, idx.Len())
}

func TestMemoryIndexZeroVectorScoresZero(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()
	require.NoError(t, idx.Upsert(ctx, []Passage{{ID: "a"}}, [][]float64{{1, 1}}))
	got, err := idx.Search(ctx, []float64{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Score)
}

func TestQdrantSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/legal_docs/points/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 3, body["limit"])

		_, _ = w.Write([]byte(`{"result":[
			{"id":"7f0e","score":0.91,"payload":{"text":"Section 279 IPC covers rash driving.","source":"ipc.txt"}},
			{"id":12,"score":0.5,"payload":{"text":"Motor Vehicles Act, 1988."}}
		]}`))
	}))
	defer srv.Close()

	idx := NewQdrantIndex(QdrantConfig{URL: srv.URL, APIKey: "secret"})
	got, err := idx.Search(context.Background(), []float64{0.1, 0.2}, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Section 279 IPC covers rash driving.", got[0].Text)
	assert.Equal(t, "ipc.txt", got[0].Source)
	assert.Equal(t, "12", got[1].ID)
}

func TestQdrantSearchReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	idx := NewQdrantIndex(QdrantConfig{URL: srv.URL})
	_, err := idx.Search(context.Background(), []float64{1}, 3)
	assert.Error(t, err)
}

func TestQdrantUpsertUsesStablePointIDs(t *testing.T) {
	var points []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body struct {
			Points []map[string]any `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		points = body.Points
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	idx := NewQdrantIndex(QdrantConfig{URL: srv.URL})
	err := idx.Upsert(context.Background(), []Passage{{ID: "ipc.txt#0", Text: "x"}}, [][]float64{{1}})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, PointID("ipc.txt#0"), points[0]["id"])
	assert.Equal(t, PointID("ipc.txt#0"), PointID("ipc.txt#0"))
	assert.NotEqual(t, PointID("ipc.txt#0"), PointID("ipc.txt#1"))
}

func TestCacheKeyDependsOnVectorAndTopK(t *testing.T) {
	a := cacheKey([]float64{1, 2}, 3)
	assert.Equal(t, a, cacheKey([]float64{1, 2}, 3))
	assert.NotEqual(t, a, cacheKey([]float64{1, 2}, 4))
	assert.NotEqual(t, a, cacheKey([]float64{2, 1}, 3))
}

type countingIndex struct {
	passages []Passage
	calls    int
}

func (c *countingIndex) Search(context.Context, []float64, int) ([]Passage, error) {
	c.calls++
	return c.passages, nil
}

// commandLog records the name of every command sent through a client.
type commandLog struct {
	mu    sync.Mutex
	names []string
}

func (l *commandLog) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	l.mu.Lock()
	l.names = append(l.names, cmd.Name())
	l.mu.Unlock()
	return ctx, nil
}

func (l *commandLog) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (l *commandLog) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (l *commandLog) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func (l *commandLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, got := range l.names {
		if got == name {
			n++
		}
	}
	return n
}

// unreachableRedis returns a client pointed at a port nothing listens on.
func unreachableRedis(t *testing.T) (*redis.Client, *commandLog) {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	log := &commandLog{}
	client.AddHook(log)
	return client, log
}

func TestCachedIndexBypassesUnavailableRedis(t *testing.T) {
	client, log := unreachableRedis(t)
	next := &countingIndex{passages: []Passage{{ID: "ipc.txt#0", Text: "Section 379 IPC defines theft."}}}
	idx := NewCachedIndex(next, client, time.Minute, zap.NewNop())

	got, err := idx.Search(context.Background(), []float64{0.1, 0.2}, 3)
	require.NoError(t, err)
	assert.Equal(t, next.passages, got)

	got, err = idx.Search(context.Background(), []float64{0.1, 0.2}, 3)
	require.NoError(t, err)
	assert.Equal(t, next.passages, got)
	assert.Equal(t, 2, next.calls)

	assert.Equal(t, 2, log.count("get"))
	assert.Equal(t, 2, log.count("set"))
}

func TestCachedIndexDoesNotStoreEmptyResults(t *testing.T) {
	client, log := unreachableRedis(t)
	next := &countingIndex{}
	idx := NewCachedIndex(next, client, time.Minute, zap.NewNop())

	got, err := idx.Search(context.Background(), []float64{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, log.count("get"))
	assert.Zero(t, log.count("set"))
}
