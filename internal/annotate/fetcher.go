// Package annotate fetches remote variant annotations into a local,
// write-once cache file.
package annotate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-myvariant/internal/vcf"
)

// DefaultLimit is the number of leading VCF records sent to the service.
const DefaultLimit = 900

// Querier posts a batch of variant ids and returns the raw response.
type Querier interface {
	QueryVariants(ctx context.Context, ids []string) ([]byte, error)
}

// Fetcher populates the annotation cache from a VCF file.
type Fetcher struct {
	client    Querier
	cachePath string
	limit     int
	logger    *zap.Logger
}

// NewFetcher creates a fetcher that stores responses at cachePath.
func NewFetcher(client Querier, cachePath string) *Fetcher {
	return &Fetcher{
		client:    client,
		cachePath: cachePath,
		limit:     DefaultLimit,
		logger:    zap.NewNop(),
	}
}

// SetLimit sets how many records are read from the VCF file.
func (f *Fetcher) SetLimit(n int) {
	f.limit = n
}

// SetLogger sets the logger for progress messages.
func (f *Fetcher) SetLogger(l *zap.Logger) {
	f.logger = l
}

// CachePath returns the location of the cache file.
func (f *Fetcher) CachePath() string {
	return f.cachePath
}

// Fetch makes sure the cache file exists. When it is already present
// nothing is read and no request is made. Otherwise the first records of
// vcfPath are queried and the raw response is written to the cache.
// The returned bool reports whether a request was made.
func (f *Fetcher) Fetch(ctx context.Context, vcfPath string) (bool, error) {
	exists, err := CacheExists(f.cachePath)
	if err != nil {
		return false, err
	}
	if exists {
		f.logger.Info("using cached annotations", zap.String("cache", f.cachePath))
		return false, nil
	}

	parser, err := vcf.NewParser(vcfPath)
	if err != nil {
		return false, err
	}
	defer parser.Close()

	return f.FetchFrom(ctx, parser)
}

// FetchFrom queries the variants read from parser and writes the cache
// file. Unlike Fetch it does not check for an existing cache up front, but
// it still never overwrites one.
func (f *Fetcher) FetchFrom(ctx context.Context, parser vcf.VariantParser) (bool, error) {
	ids, err := vcf.CollectQueryIDs(parser, f.limit)
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, errors.New("no variants found in input")
	}

	f.logger.Info("querying annotations", zap.Int("variants", len(ids)))

	body, err := f.client.QueryVariants(ctx, ids)
	if err != nil {
		return false, err
	}

	if err := WriteCacheIfAbsent(f.cachePath, body); err != nil {
		if errors.Is(err, ErrCacheExists) {
			f.logger.Warn("annotation cache appeared during fetch, keeping existing file",
				zap.String("cache", f.cachePath))
			return true, nil
		}
		return true, err
	}

	f.logger.Info("wrote annotation cache",
		zap.String("cache", f.cachePath),
		zap.Int("bytes", len(body)))
	return true, nil
}

// Describe returns a short human-readable status line for the cache.
func (f *Fetcher) Describe() string {
	exists, err := CacheExists(f.cachePath)
	switch {
	case err != nil:
		return fmt.Sprintf("%s (unreadable: %v)", f.cachePath, err)
	case exists:
		return fmt.Sprintf("%s (cached)", f.cachePath)
	default:
		return fmt.Sprintf("%s (missing)", f.cachePath)
	}
}
