package pool

import (
	"sync"
)

// OutcomePool implements a pool of int slices used to collect walk outcomes,
// so repeated estimates with the same walk count reuse their buffers.
type OutcomePool struct {
	pool sync.Pool
	size int
}

// NewOutcomePool creates a new pool with buffers of the specified capacity.
func NewOutcomePool(size int) *OutcomePool {
	return &OutcomePool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available.
func (op *OutcomePool) Get() *[]int {
	return op.pool.Get().(*[]int)
}

// Put returns a buffer to the pool for reuse.
func (op *OutcomePool) Put(buffer *[]int) {
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	op.pool.Put(buffer)
}
