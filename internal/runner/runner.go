// Package runner evaluates one circuit against many independent input
// vectors concurrently. circuit.Evaluate already allocates fresh scratch
// on every call, so the only thing a caller needs to add is the worker
// pool that fans the batch out across goroutines and collects results in
// order.
package runner

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ciphron/scdl/circuit"
	"github.com/ciphron/scdl/internal/logger"
)

// Options configures a Runner.
type Options struct {
	// Workers is the number of goroutines evaluating concurrently; 0
	// defaults to runtime.NumCPU(), capped to the batch size.
	Workers int
}

// Runner evaluates a circuit over a batch of input vectors.
type Runner struct {
	workers int
	log     *logger.Logger
}

// New returns a Runner configured by options.
func New(options Options) *Runner {
	return &Runner{workers: options.Workers, log: logger.NewLogger(logger.LoggerOptions{}).SpawnForComponent("runner")}
}

// Result pairs one batch input's index with its evaluated value or
// error, so RunBatch can report partial failures without losing which
// input they belong to.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// RunBatch evaluates c once per entry of inputs, each entry being one
// full input vector, and returns one Result per entry in the same order
// they were given — the order workers finish in does not matter, only
// the index each result is tagged with.
func RunBatch[T circuit.Elem[T]](r *Runner, c *circuit.Circuit, inputs [][]T) []Result[T] {
	n := len(inputs)
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}

	workers := r.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				v, err := circuit.Evaluate(c, inputs[i])
				if err != nil {
					err = fmt.Errorf("input %d: %w", i, err)
				}
				results[i] = Result[T]{Index: i, Value: v, Err: err}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	r.log.Debug().Int("batch_size", n).Int("workers", workers).Msg("batch evaluated")
	return results
}
