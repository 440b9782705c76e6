package sentiment

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem pairs an input text with its result. Index is the position of
// the text in the batch.
type BatchItem struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Result
}

// ClassifyBatch classifies texts concurrently with at most workers
// goroutines (GOMAXPROCS when workers <= 0). Items come back in input order.
// The only possible error is cancellation of ctx.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string, workers int) ([]BatchItem, error) {
	items := make([]BatchItem, len(texts))
	if len(texts) == 0 {
		return items, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = BatchItem{Index: i, Text: text, Result: c.Classify(text)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop can stop early without any goroutine observing the
	// cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Results extracts the classification results from items.
func Results(items []BatchItem) []Result {
	out := make([]Result, len(items))
	for i, it := range items {
		out[i] = it.Result
	}
	return out
}
