package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
)

// Fetcher downloads remote datasets, keeping each response body in an
// optional leveldb cache keyed by URL.
type Fetcher struct {
	client *resty.Client
	cache  *leveldb.DB
}

func NewFetcher(client *resty.Client, cache *leveldb.DB) *Fetcher {
	if client == nil {
		client = resty.New()
	}
	return &Fetcher{client: client, cache: cache}
}

func cacheKey(url string) []byte {
	return fmt.Appendf([]byte{}, "dataset-%s", url)
}

func (f *Fetcher) Fetch(ctx context.Context, pw progress.Writer, url string) ([]byte, error) {
	if f.cache != nil {
		if body, err := f.cache.Get(cacheKey(url), nil); err == nil {
			return body, nil
		} else if !errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("dataset cache: %w", err)
		}
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Fetching dataset",
			Total:   1,
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if tracker != nil {
			tracker.MarkAsErrored()
		}
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		if tracker != nil {
			tracker.MarkAsErrored()
		}
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status())
	}
	if tracker != nil {
		tracker.MarkAsDone()
	}

	body := resp.Body()
	if f.cache != nil {
		if err := f.cache.Put(cacheKey(url), body, nil); err != nil {
			return nil, fmt.Errorf("dataset cache: %w", err)
		}
	}
	return body, nil
}
