// Command ingest loads legal reference documents into the Qdrant collection
// the assistant searches.
//
//	go run ./scripts/ingest -dir ./docs
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lawyerconnect/config"
	"lawyerconnect/services/embedding"
	"lawyerconnect/services/retrieval"
	"lawyerconnect/utils"

	"go.uber.org/zap"
)

const upsertBatch = 64

func main() {
	var (
		dir        string
		collection string
		maxChars   int
		dryRun     bool
	)
	flag.StringVar(&dir, "dir", "", "directory of .txt/.md documents to ingest")
	flag.StringVar(&collection, "collection", "", "Qdrant collection (default QDRANT_COLLECTION)")
	flag.IntVar(&maxChars, "max-chars", defaultMaxChars, "soft limit on characters per chunk")
	flag.BoolVar(&dryRun, "dry-run", false, "chunk and embed without writing to Qdrant")
	flag.Parse()

	if dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: ingest -dir <path> [-collection name] [-max-chars n] [-dry-run]")
		os.Exit(2)
	}

	config.LoadConfig()
	logger := utils.GetLogger()
	if collection == "" {
		collection = config.AppConfig.QdrantCollection
	}

	chunks, err := loadChunks(dir, maxChars)
	if err != nil {
		logger.Fatal("ingest: failed to read documents", zap.String("dir", dir), zap.Error(err))
	}
	logger.Info("ingest: documents chunked", zap.Int("chunks", len(chunks)))
	if len(chunks) == 0 {
		return
	}

	embedder := embedding.NewHashEmbedder()
	passages := make([]retrieval.Passage, len(chunks))
	vectors := make([][]float64, len(chunks))
	for i, ch := range chunks {
		passages[i] = retrieval.Passage{ID: ch.ID, Text: ch.Text, Source: ch.Source}
		vectors[i] = embedder.Embed(ch.Text)
	}
	if dryRun {
		logger.Info("ingest: dry run, nothing written", zap.Int("passages", len(passages)))
		return
	}

	if config.AppConfig.QdrantURL == "" {
		logger.Fatal("ingest: QDRANT_URL is not set")
	}
	index := retrieval.NewQdrantIndex(retrieval.QdrantConfig{
		URL:        config.AppConfig.QdrantURL,
		APIKey:     config.AppConfig.QdrantAPIKey,
		Collection: collection,
		Timeout:    30 * time.Second,
	})

	ctx := context.Background()
	if err := index.EnsureCollection(ctx, embedder.Dimension()); err != nil {
		logger.Fatal("ingest: failed to prepare collection", zap.String("collection", collection), zap.Error(err))
	}
	for start := 0; start < len(passages); start += upsertBatch {
		end := min(start+upsertBatch, len(passages))
		if err := index.Upsert(ctx, passages[start:end], vectors[start:end]); err != nil {
			logger.Fatal("ingest: upsert failed", zap.Int("from", start), zap.Error(err))
		}
		logger.Info("ingest: batch written", zap.Int("from", start), zap.Int("to", end))
	}
	logger.Info("ingest: done", zap.String("collection", collection), zap.Int("passages", len(passages)))
}

// loadChunks walks dir and chunks every .txt and .md file in path order.
func loadChunks(dir string, maxChars int) ([]chunk, error) {
	var out []chunk
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		out = append(out, chunkDocument(filepath.ToSlash(rel), string(data), maxChars)...)
		return nil
	})
	return out, err
}
