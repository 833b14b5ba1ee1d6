// File: utils/constants.go
package utils

import "time"

// RetrievalCachePrefix is the prefix used for cached vector-search results.
const RetrievalCachePrefix = "rag:ctx:"

// DefaultRetrievalCacheTTL applies when no TTL is configured.
const DefaultRetrievalCacheTTL = 10 * time.Minute
