package main

import (
	"context"
	"io"

	"github.com/cheggaaa/pb/v3"

	"pokecatcher/internal/catalog"
)

type loadSummary struct {
	pages   int
	loaded  int
	dropped int
}

// loadPages loads up to maxPages pages (0 means until exhausted), drawing a
// progress bar on w sized by the catalog total reported by the first page.
func loadPages(ctx context.Context, svc *catalog.Service, maxPages int, w io.Writer) (loadSummary, error) {
	var (
		sum loadSummary
		bar *pb.ProgressBar
	)
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	for maxPages == 0 || sum.pages < maxPages {
		res, err := svc.LoadNextPage(ctx)
		if err != nil {
			return sum, err
		}
		if res.Exhausted {
			break
		}
		sum.pages++
		sum.loaded += len(res.Appended)
		sum.dropped += res.Dropped

		if bar == nil {
			bar = pb.Full.New(res.Total)
			bar.SetWriter(w)
			bar.Set("prefix", "loading ")
			bar.Set(pb.CleanOnFinish, true)
			bar.Start()
		}
		bar.SetCurrent(int64(res.NextOffset))
	}
	return sum, nil
}
