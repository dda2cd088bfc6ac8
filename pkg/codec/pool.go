package codec

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/goctr/pkg/ctr"
)

// batchBlocks is the number of chunks handed to a worker as one task.
const batchBlocks = 256

// transform runs counter mode over chunks on at most workers goroutines and
// writes chunk i, processed with counter start+i, to dst[i*BlockSize:].
// Only the last chunk may be shorter than BlockSize.
//
// order lists the batch indices in the order they are submitted to the pool;
// nil submits them in ascending order. Output placement depends only on the
// chunk index, never on completion order. The first failing task fails the
// whole transform.
func transform(mode *ctr.Mode, chunks [][]byte, start uint64, dst []byte, workers int, order []int) error {
	if n := len(chunks); n > 0 && len(dst) < (n-1)*BlockSize+len(chunks[n-1]) {
		return fmt.Errorf("output buffer of %d bytes too small for %d blocks", len(dst), n)
	}

	batches := (len(chunks) + batchBlocks - 1) / batchBlocks

	if order == nil {
		order = make([]int, batches)
		for i := range order {
			order[i] = i
		}
	}

	group := errgroup.Group{}
	group.SetLimit(max(1, workers))

	for _, batch := range order {
		group.Go(func() error {
			first := batch * batchBlocks
			last := min(first+batchBlocks, len(chunks))

			for i := first; i < last; i++ {
				out, err := mode.EncryptBlock(chunks[i], start+uint64(i))
				if err != nil {
					return fmt.Errorf("block %d: %w", i, err)
				}

				copy(dst[i*BlockSize:], out)
			}

			return nil
		})
	}

	return group.Wait()
}
