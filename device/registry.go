package device

import (
	"sync"
)

var (
	kernelMu      sync.RWMutex
	kernelCatalog = map[string]KernelFunc{}
)

// RegisterKernel registers the host implementation for a kernel entry
// point. Compiling a program whose entry point has no registered
// implementation fails with ErrUnknownKernel.
//
// Kernel packages should typically call this from an init() function.
// Registering a nil function or the same entry point twice panics.
func RegisterKernel(entryPoint string, fn KernelFunc) {
	if fn == nil {
		panic("device: RegisterKernel with nil function")
	}

	kernelMu.Lock()
	defer kernelMu.Unlock()

	if _, dup := kernelCatalog[entryPoint]; dup {
		panic("device: RegisterKernel called twice for " + entryPoint)
	}
	kernelCatalog[entryPoint] = fn
}

func lookupKernel(entryPoint string) (KernelFunc, bool) {
	kernelMu.RLock()
	defer kernelMu.RUnlock()

	fn, ok := kernelCatalog[entryPoint]
	return fn, ok
}
