package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/availreport/internal/adapters/watch"
	. "github.com/smartystreets/goconvey/convey"
)

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher(t *testing.T) {
	Convey("Given a watched input file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "team.csv")
		So(os.WriteFile(path, []byte("a"), 0o600), ShouldBeNil)

		var calls atomic.Int32
		handler := func(_ context.Context, got string) error {
			if got == path {
				calls.Add(1)
			}
			return nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		w := watch.New(path, handler, watch.WithDebounce(150*time.Millisecond), watch.WithRunOnStart(true))
		go func() { done <- w.Run(ctx) }()

		So(waitFor(func() bool { return calls.Load() == 1 }), ShouldBeTrue)

		Convey("When the file is saved several times in a burst", func() {
			for i := 0; i < 5; i++ {
				So(os.WriteFile(path, []byte{byte('b' + i)}, 0o600), ShouldBeNil)
			}

			Convey("Then the handler should run once more", func() {
				So(waitFor(func() bool { return calls.Load() == 2 }), ShouldBeTrue)
				time.Sleep(400 * time.Millisecond)
				So(calls.Load(), ShouldEqual, 2)
			})
		})

		Convey("When a sibling file changes", func() {
			So(os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o600), ShouldBeNil)
			time.Sleep(400 * time.Millisecond)

			Convey("Then the handler should not run", func() {
				So(calls.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the file is replaced by rename", func() {
			tmp := filepath.Join(dir, ".team.csv.tmp")
			So(os.WriteFile(tmp, []byte("new"), 0o600), ShouldBeNil)
			So(os.Rename(tmp, path), ShouldBeNil)

			Convey("Then the handler should run", func() {
				So(waitFor(func() bool { return calls.Load() == 2 }), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then Run should return cleanly", func() {
				select {
				case err := <-done:
					So(err, ShouldBeNil)
				case <-time.After(5 * time.Second):
					So("watcher did not stop", ShouldBeEmpty)
				}
			})
		})
	})

	Convey("Given a handler that fails", t, func() {
		path := filepath.Join(t.TempDir(), "team.csv")
		So(os.WriteFile(path, []byte("a"), 0o600), ShouldBeNil)

		var calls atomic.Int32
		handler := func(context.Context, string) error {
			calls.Add(1)
			return errors.New("boom")
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = watch.New(path, handler, watch.WithDebounce(50*time.Millisecond), watch.WithRunOnStart(true)).Run(ctx) }()

		Convey("Then the watcher should keep going", func() {
			So(waitFor(func() bool { return calls.Load() == 1 }), ShouldBeTrue)
			So(os.WriteFile(path, []byte("b"), 0o600), ShouldBeNil)
			So(waitFor(func() bool { return calls.Load() == 2 }), ShouldBeTrue)
		})
	})

	Convey("Given invalid targets", t, func() {
		ok := func(context.Context, string) error { return nil }

		Convey("Then a missing file should fail", func() {
			err := watch.New(filepath.Join(t.TempDir(), "nope.csv"), ok).Run(context.Background())
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})

		Convey("Then a directory should fail", func() {
			err := watch.New(t.TempDir(), ok).Run(context.Background())
			So(errors.Is(err, watch.ErrNotFile), ShouldBeTrue)
		})

		Convey("Then a nil handler should fail", func() {
			err := watch.New("x.csv", nil).Run(context.Background())
			So(errors.Is(err, watch.ErrNoHandler), ShouldBeTrue)
		})
	})
}
