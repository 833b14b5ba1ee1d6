package main

import (
	"strconv"
	"strings"
)

const defaultMaxChars = 1200

type chunk struct {
	ID     string
	Source string
	Text   string
}

// chunkDocument splits text on blank lines and packs consecutive paragraphs
// into chunks of at most maxChars. A single longer paragraph becomes its own
// chunk. IDs are "<source>:<n>" so re-ingesting a file replaces its chunks.
func chunkDocument(source, text string, maxChars int) []chunk {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		chunks  []chunk
		current strings.Builder
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, chunk{
			ID:     source + ":" + strconv.Itoa(len(chunks)),
			Source: source,
			Text:   current.String(),
		})
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+2+len(para) > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()
	return chunks
}
