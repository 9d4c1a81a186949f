package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Synthesis hooks
	s := NoopSynthesisHooks{}
	s.OnBuildStart(ctx, 5, 120)
	s.OnBuildComplete(ctx, 5, 40, time.Second, nil)
	s.OnTrialStart(ctx, 0, 42)
	s.OnTrialComplete(ctx, 0, 12, 60, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)

	// Server hooks
	h := NoopServerHooks{}
	h.OnRequest(ctx, "POST", "/v1/optimize")
	h.OnResponse(ctx, "POST", "/v1/optimize", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/optimize", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Synthesis() should return NoopSynthesisHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	// Set custom hooks
	customSynthesis := &testSynthesisHooks{}
	SetSynthesisHooks(customSynthesis)
	if Synthesis() != customSynthesis {
		t.Error("SetSynthesisHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Reset() should restore NoopSynthesisHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSynthesisHooks{}
	SetSynthesisHooks(custom)

	// Setting nil should be ignored
	SetSynthesisHooks(nil)

	if Synthesis() != custom {
		t.Error("SetSynthesisHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSynthesisHooks struct{ NoopSynthesisHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
