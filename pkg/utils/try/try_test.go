package try_test

import (
	"errors"
	"testing"

	"github.com/azure/feast-azure/pkg/utils/try"
)

type recorder struct {
	fatal  [][]any
	helped int
}

func (r *recorder) Fatal(args ...any) {
	r.fatal = append(r.fatal, args)
}

func (r *recorder) Helper() {
	r.helped += 1
}

type bareFataler struct {
	fatal int
}

func (b *bareFataler) Fatal(...any) {
	b.fatal += 1
}

func TestOrFatal(t *testing.T) {
	t.Run("without error, it returns the value and stays quiet", func(t *testing.T) {
		r := &recorder{}
		if actual := try.To(42, nil).OrFatal(r); actual != 42 {
			t.Errorf("unexpected result: (actual, expected) = (%d, %d)", actual, 42)
		}
		if len(r.fatal) != 0 || r.helped != 0 {
			t.Errorf("fataler is touched: (fatal, helper) = (%v, %d)", r.fatal, r.helped)
		}
	})

	t.Run("with error, it calls Helper then Fatal with the error", func(t *testing.T) {
		cause := errors.New("fake error")
		r := &recorder{}
		if actual := try.To(42, cause).OrFatal(r); actual != 0 {
			t.Errorf("value should be zero: %d", actual)
		}
		if r.helped != 1 {
			t.Errorf("Helper is called %d times", r.helped)
		}
		if len(r.fatal) != 1 || len(r.fatal[0]) != 1 {
			t.Fatalf("unexpected Fatal calls: %v", r.fatal)
		}
		if err, ok := r.fatal[0][0].(error); !ok || !errors.Is(err, cause) {
			t.Errorf("Fatal is called with unexpected args: %v", r.fatal[0])
		}
	})

	t.Run("fatalers without Helper are fine", func(t *testing.T) {
		b := &bareFataler{}
		try.To("", errors.New("fake error")).OrFatal(b)
		if b.fatal != 1 {
			t.Errorf("Fatal is called %d times", b.fatal)
		}
	})
}
