package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/okian/rota/internal/adapters/repository"
	"github.com/okian/rota/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileHistory(t *testing.T) {
	Convey("Given a history store in a fresh directory", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "Schedules", "schedule_history.txt")
		store := repository.NewFileHistory(path)

		Convey("When nothing has been written yet", func() {
			h, err := store.Read(ctx)

			Convey("Then the history is empty", func() {
				So(err, ShouldBeNil)
				So(h.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a history is written", func() {
			err := store.Write(ctx, model.NewHistorySet("Sara", "Bruno", "Maria Julia"))
			So(err, ShouldBeNil)

			Convey("Then the file lists names sorted, one per line", func() {
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldEqual, "Bruno\nMaria Julia\nSara\n")
			})

			Convey("Then reading returns the same set", func() {
				h, readErr := store.Read(ctx)
				So(readErr, ShouldBeNil)
				So(h.Equal(model.NewHistorySet("Sara", "Bruno", "Maria Julia")), ShouldBeTrue)
			})

			Convey("And a second write replaces it entirely", func() {
				So(store.Write(ctx, model.NewHistorySet("Clara")), ShouldBeNil)
				h, readErr := store.Read(ctx)
				So(readErr, ShouldBeNil)
				So(h.Sorted(), ShouldResemble, []model.Person{"Clara"})
			})
		})

		Convey("When the file has blank lines and padding", func() {
			So(os.MkdirAll(filepath.Dir(path), 0o750), ShouldBeNil)
			So(os.WriteFile(path, []byte("\n  Ana \n\nBia\n"), 0o644), ShouldBeNil)

			h, err := store.Read(ctx)

			Convey("Then only the names are kept", func() {
				So(err, ShouldBeNil)
				So(h.Sorted(), ShouldResemble, []model.Person{"Ana", "Bia"})
			})
		})
	})
}
