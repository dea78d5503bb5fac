package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/pactproof/backend/internal/domain/document"
)

// memoryCache is a simple in-memory cache keyed by document content hash.
type memoryCache[T any] struct {
	mu    sync.RWMutex
	store map[string]T
}

func newMemoryCache[T any]() *memoryCache[T] {
	return &memoryCache[T]{store: make(map[string]T)}
}

func (c *memoryCache[T]) get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, found := c.store[key]
	return value, found
}

func (c *memoryCache[T]) set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = value
}

// CachingExtractor wraps an Extractor and reuses results for documents it
// has already seen. Extraction calls are slow and metered, and the same
// document is often re-submitted, so results are keyed by content hash
// rather than filename.
type CachingExtractor struct {
	inner     Extractor
	invoices  *memoryCache[*InvoiceExtraction]
	contracts *memoryCache[*ContractExtraction]
	logger    *slog.Logger
}

var _ Extractor = (*CachingExtractor)(nil)

// NewCachingExtractor creates a caching wrapper around inner.
func NewCachingExtractor(inner Extractor, logger *slog.Logger) *CachingExtractor {
	return &CachingExtractor{
		inner:     inner,
		invoices:  newMemoryCache[*InvoiceExtraction](),
		contracts: newMemoryCache[*ContractExtraction](),
		logger:    logger,
	}
}

// Parse delegates to the wrapped extractor. Parse results are cheap
// relative to extraction and are not cached.
func (c *CachingExtractor) Parse(ctx context.Context, filePath string) (document.ParseResult, error) {
	return c.inner.Parse(ctx, filePath)
}

// ExtractInvoice returns a cached result when the file contents match a
// previous extraction.
func (c *CachingExtractor) ExtractInvoice(ctx context.Context, filePath string) (*InvoiceExtraction, error) {
	key, err := hashFile(filePath)
	if err != nil {
		return c.inner.ExtractInvoice(ctx, filePath)
	}

	if cached, found := c.invoices.get(key); found {
		c.logger.Debug("Extraction cache hit", "file", filePath, "doc_type", "invoice")
		return cached, nil
	}

	result, err := c.inner.ExtractInvoice(ctx, filePath)
	if err != nil {
		return nil, err
	}

	c.invoices.set(key, result)
	return result, nil
}

// ExtractContract returns a cached result when the file contents match a
// previous extraction.
func (c *CachingExtractor) ExtractContract(ctx context.Context, filePath string) (*ContractExtraction, error) {
	key, err := hashFile(filePath)
	if err != nil {
		return c.inner.ExtractContract(ctx, filePath)
	}

	if cached, found := c.contracts.get(key); found {
		c.logger.Debug("Extraction cache hit", "file", filePath, "doc_type", "contract")
		return cached, nil
	}

	result, err := c.inner.ExtractContract(ctx, filePath)
	if err != nil {
		return nil, err
	}

	c.contracts.set(key, result)
	return result, nil
}

// hashFile returns the hex SHA-256 of the file contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
