package filewatch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/azure/feast-azure/pkg/utils/filewatch"
)

func waitDone(t *testing.T, ctx context.Context) bool {
	t.Helper()
	select {
	case <-ctx.Done():
		return true
	case <-time.After(5 * time.Second):
		return false
	}
}

func TestUntilModifyContext(t *testing.T) {
	for name, testcase := range map[string]struct {
		watchDir bool
		modify   func(file string) error
	}{
		"file created in watched directory": {
			watchDir: true,
			modify: func(file string) error {
				return os.WriteFile(file+".new", []byte("new"), 0644)
			},
		},
		"file written in watched directory": {
			watchDir: true,
			modify: func(file string) error {
				return os.WriteFile(file, []byte("port: 80"), 0644)
			},
		},
		"watched file written": {
			modify: func(file string) error {
				return os.WriteFile(file, []byte("port: 80"), 0644)
			},
		},
		"watched file removed": {
			modify: os.Remove,
		},
		"watched file renamed": {
			modify: func(file string) error {
				return os.Rename(file, file+".old")
			},
		},
	} {
		t.Run("when "+name+", it cancels context", func(t *testing.T) {
			dir := t.TempDir()
			file := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(file, []byte("port: 8080"), 0644); err != nil {
				t.Fatal(err)
			}

			target := file
			if testcase.watchDir {
				target = dir
			}
			ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), target)
			if err != nil {
				t.Fatal(err)
			}
			defer cancel()

			if err := ctx.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := testcase.modify(file); err != nil {
				t.Fatal(err)
			}

			if !waitDone(t, ctx) {
				t.Fatal("context is not canceled")
			}
			var modified *filewatch.ModifiedError
			if cause := context.Cause(ctx); !errors.As(cause, &modified) {
				t.Errorf("unexpected cause: %v", cause)
			}
		})
	}

	t.Run("cancel stops watching without cause", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(file, []byte("port: 8080"), 0644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), file)
		if err != nil {
			t.Fatal(err)
		}
		cancel()

		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("unexpected error: %v", ctx.Err())
		}
		if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
			t.Errorf("unexpected cause: %v", cause)
		}
	})

	t.Run("missing file causes error", func(t *testing.T) {
		_, _, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(t.TempDir(), "nothing"),
		)
		if err == nil {
			t.Error("expected error")
		}
	})
}
