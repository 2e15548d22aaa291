package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/pictograph/pkg/adapters/memory"
	"github.com/aretw0/pictograph/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 1000

	// 1. Create and Delete many documents
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("doc-%d", i)
		_ = mgr.Save(ctx, name, domain.NewDocument())
		_ = mgr.Delete(ctx, name)
	}

	// 2. No lock entry survives its last user
	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
