package tlv

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/eluv-io/errors-go"
)

// BatchResult is the outcome of parsing one payload of a batch.
type BatchResult struct {
	Records Records
	Err     error
}

// ParseBatch parses independent payloads on up to Config.Workers goroutines.
// The results are in the order of the payloads. Once the context is cancelled,
// payloads that have not been started yet fail with a Cancelled error.
func (p *Parser) ParseBatch(ctx context.Context, payloads [][]byte) []BatchResult {
	res := make([]BatchResult, len(payloads))
	if len(payloads) == 0 {
		return res
	}

	workers := p.cfg.Workers
	if workers > len(payloads) {
		workers = len(payloads)
	}

	// workers claim payload indexes from a shared counter, each index is
	// handled by exactly one worker
	next := atomic.NewInt64(-1)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Inc())
				if i >= len(payloads) {
					return
				}
				if ctx.Err() != nil {
					res[i].Err = errors.E("tlv.ParseBatch", errors.K.Cancelled, ctx.Err(), "payload", i)
					continue
				}
				res[i].Records, res[i].Err = p.Parse(payloads[i])
			}
		}()
	}
	wg.Wait()

	return res
}

