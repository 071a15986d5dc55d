package concurrent

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		jobs       int
	}{
		{name: "single worker", numWorkers: 1, jobs: 10},
		{name: "more workers than jobs", numWorkers: 8, jobs: 3},
		{name: "zero workers falls back to one", numWorkers: 0, jobs: 5},
		{name: "no jobs", numWorkers: 4, jobs: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var calls int64
			jobs := make([]int, tt.jobs)
			want := make([]int, tt.jobs)
			for i := range jobs {
				jobs[i] = i
				want[i] = i * i
			}

			got := RunAll(tt.numWorkers, jobs, func(job int) int {
				atomic.AddInt64(&calls, 1)
				return job * job
			})

			sort.Ints(got)
			assert.Equal(t, want, got)
			assert.Equal(t, int64(tt.jobs), atomic.LoadInt64(&calls))
		})
	}
}
