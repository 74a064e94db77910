package workpool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolProcessesEveryItem(t *testing.T) {
	var sum int64
	p := New(4, func(w int) error {
		atomic.AddInt64(&sum, int64(w))
		return nil
	})

	for i := 1; i <= 100; i++ {
		p.Submit(i)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if sum != 5050 {
		t.Errorf("sum = %d, want 5050", sum)
	}
}

func TestPoolSurfacesFirstError(t *testing.T) {
	wantErr := errors.New("boom")
	p := New(2, func(w int) error {
		if w == 1 {
			return wantErr
		}
		return nil
	})
	p.Submit(1)
	p.Submit(2)

	if err := p.Close(); err == nil {
		t.Fatal("expected an error from Close")
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := New(1, func(w int) error {
		panic("boom")
	})
	p.Submit(1)

	if err := p.Close(); err == nil {
		t.Fatal("expected a recovered panic to surface as an error")
	}
}
