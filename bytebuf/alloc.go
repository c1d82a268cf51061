package bytebuf

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/simd-detect/errors"
)

// Allocator hands out guest memory.
type Allocator interface {
	Alloc(ctx context.Context, size uint32) (uint32, error)
	Free(ctx context.Context, ptr, size uint32)
}

// guestAllocator calls the guest's alloc_bytes and free_bytes exports.
type guestAllocator struct {
	allocFn  api.Function
	freeFn   api.Function
	stackBuf []uint64
	mu       sync.Mutex
}

func newGuestAllocator(allocFn, freeFn api.Function) *guestAllocator {
	return &guestAllocator{
		allocFn:  allocFn,
		freeFn:   freeFn,
		stackBuf: make([]uint64, 2),
	}
}

func (a *guestAllocator) Alloc(ctx context.Context, size uint32) (uint32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = uint64(size)
	if err := a.allocFn.CallWithStack(ctx, a.stackBuf[:1]); err != nil {
		return 0, errors.AllocationFailed(errors.PhaseCall, size, err)
	}
	ptr := uint32(a.stackBuf[0])
	if ptr == 0 && size > 0 {
		return 0, errors.AllocationFailed(errors.PhaseCall, size, nil)
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ctx context.Context, ptr, size uint32) {
	if ptr == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	if err := a.freeFn.CallWithStack(ctx, a.stackBuf[:2]); err != nil {
		Logger().Warn("free_bytes failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
