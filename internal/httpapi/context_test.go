package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJoinContexts_CancelsWhenEitherDone(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	ctx, cancel := joinContexts(a, b)
	defer cancel()
	cancelA()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled")
	}
}

func TestWorkContext_BaseCancelAndTimeout(t *testing.T) {
	base, cancelBase := context.WithCancel(context.Background())
	SetBaseContext(base)
	defer SetBaseContext(nil)

	ctx, cancel := workContext(httptest.NewRequest("POST", "/generate", nil))
	defer cancel()
	cancelBase()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("shutdown did not cancel work context")
	}

	SetBaseContext(nil)
	SetGenerateTimeoutSeconds(1)
	defer SetGenerateTimeoutSeconds(0)
	ctx2, cancel2 := workContext(httptest.NewRequest("POST", "/generate", nil))
	defer cancel2()
	if _, ok := ctx2.Deadline(); !ok {
		t.Fatalf("expected a deadline when the timeout is set")
	}
}
