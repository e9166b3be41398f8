package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load parses a dataset from a local CSV path or an http(s) URL. Remote
// sources go through fetcher, which may be nil for local files.
func Load(ctx context.Context, pw progress.Writer, fetcher *Fetcher, source string, header HeaderMode) (*Dataset, error) {
	if IsRemote(source) {
		if fetcher == nil {
			fetcher = NewFetcher(nil, nil)
		}
		body, err := fetcher.Fetch(ctx, pw, source)
		if err != nil {
			return nil, err
		}
		if ds, err := ParseCSV(bytes.NewReader(body), header); err != nil {
			return nil, fmt.Errorf("parse %s: %w", source, err)
		} else {
			return ds, nil
		}
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if ds, err := ParseCSV(f, header); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	} else {
		return ds, nil
	}
}
