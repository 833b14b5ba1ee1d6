package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// QdrantIndex is a minimal REST client to a Qdrant collection using cosine distance.
type QdrantIndex struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewQdrantIndex(cfg QdrantConfig) *QdrantIndex {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "legal_docs"
	}
	return &QdrantIndex{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection if it does not exist yet.
func (q *QdrantIndex) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	var info struct {
		Status string `json:"status"`
	}
	err := q.do(ctx, http.MethodGet, q.collectionURL(), nil, &info)
	if err == nil {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return q.do(ctx, http.MethodPut, q.collectionURL(), body, nil)
}

// Upsert writes passages as points. Point ids are derived from the passage
// id so re-ingesting the same passage overwrites it.
func (q *QdrantIndex) Upsert(ctx context.Context, passages []Passage, vectors [][]float64) error {
	if len(passages) != len(vectors) {
		return errors.New("passages and vectors length mismatch")
	}
	if len(passages) == 0 {
		return nil
	}
	points := make([]map[string]any, len(passages))
	for i, p := range passages {
		points[i] = map[string]any{
			"id":     PointID(p.ID),
			"vector": vectors[i],
			"payload": map[string]any{
				"passage_id": p.ID,
				"source":     p.Source,
				"text":       p.Text,
			},
		}
	}
	body := map[string]any{"points": points}
	return q.do(ctx, http.MethodPut, q.collectionURL()+"/points?wait=true", body, nil)
}

func (q *QdrantIndex) Search(ctx context.Context, vector []float64, topK int) ([]Passage, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := q.do(ctx, http.MethodPost, q.collectionURL()+"/points/search", req, &resp); err != nil {
		return nil, err
	}
	passages := make([]Passage, 0, len(resp.Result))
	for _, r := range resp.Result {
		p := Passage{Score: r.Score, ID: fmt.Sprint(r.ID)}
		if v, ok := r.Payload["passage_id"].(string); ok && v != "" {
			p.ID = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			p.Source = v
		}
		if v, ok := r.Payload["text"].(string); ok {
			p.Text = v
		}
		passages = append(passages, p)
	}
	return passages, nil
}

// PointID maps an arbitrary passage id onto the UUID form Qdrant accepts.
func PointID(passageID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("lawyerconnect:passage:"+passageID)).String()
}

func (q *QdrantIndex) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", q.url, q.collection)
}

func (q *QdrantIndex) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("qdrant: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("qdrant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("qdrant: decode response: %w", err)
		}
	}
	return nil
}
