package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/festgrid/internal/adapters/repository"
	"github.com/okian/festgrid/internal/domain/zoom"
	. "github.com/smartystreets/goconvey/convey"
)

var _ zoom.KV = (*repository.FilePrefs)(nil)

func TestFilePrefs(t *testing.T) {
	ctx := context.Background()

	Convey("Given a prefs path that does not exist yet", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "prefs.json")
		p, err := repository.OpenFilePrefs(path)
		So(err, ShouldBeNil)

		_, ok, err := p.Get(ctx, "k")
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)

		Convey("Set persists across reopen", func() {
			So(p.Set(ctx, "k", "v"), ShouldBeNil)
			So(p.Set(ctx, zoom.HintKey, "true"), ShouldBeNil)

			reopened, err := repository.OpenFilePrefs(path)
			So(err, ShouldBeNil)
			v, ok, _ := reopened.Get(ctx, "k")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "v")

			info, err := os.Stat(path)
			So(err, ShouldBeNil)
			So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))

			entries, _ := os.ReadDir(filepath.Dir(path))
			So(entries, ShouldHaveLength, 1)
		})

		Convey("It backs the zoom hint flag", func() {
			h, err := zoom.LoadHintFlag(ctx, p)
			So(err, ShouldBeNil)
			_, err = h.Dismiss(ctx)
			So(err, ShouldBeNil)

			reopened, _ := repository.OpenFilePrefs(path)
			h2, err := zoom.LoadHintFlag(ctx, reopened)
			So(err, ShouldBeNil)
			So(h2.Dismissed(), ShouldBeTrue)
		})

		Convey("A cancelled context does not write", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(p.Set(cctx, "k", "v"), ShouldNotBeNil)
			_, err := os.Stat(path)
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})

	Convey("A corrupt file is an error", t, func() {
		path := filepath.Join(t.TempDir(), "prefs.json")
		So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
		_, err := repository.OpenFilePrefs(path)
		So(err, ShouldNotBeNil)
	})
}
