package rotation_test

import (
	"errors"
	"testing"

	"github.com/okian/rota/internal/domain/model"
	"github.com/okian/rota/internal/domain/rotation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAvoidPool(t *testing.T) {
	Convey("Given a non-empty history", t, func() {
		history := model.NewHistorySet("ana", "bia", "caio")

		Convey("When the mode is fresh", func() {
			pool := rotation.AvoidPool(rotation.Fresh, history)

			Convey("Then nobody is avoided", func() {
				So(pool.Len(), ShouldEqual, 0)
				So(rotation.Effective(rotation.Fresh, history), ShouldEqual, rotation.Fresh)
			})
		})

		Convey("When the mode is fair", func() {
			pool := rotation.AvoidPool(rotation.Fair, history)

			Convey("Then the whole history is avoided", func() {
				So(pool.Equal(history), ShouldBeTrue)
				So(rotation.Effective(rotation.Fair, history), ShouldEqual, rotation.Fair)
			})

			Convey("And the pool is a copy", func() {
				pool["dani"] = struct{}{}
				So(history.Contains("dani"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an empty history", t, func() {
		Convey("When the mode is fair", func() {
			pool := rotation.AvoidPool(rotation.Fair, nil)

			Convey("Then it degrades to fresh without error", func() {
				So(pool.Len(), ShouldEqual, 0)
				So(rotation.Effective(rotation.Fair, nil), ShouldEqual, rotation.Fresh)
			})
		})
	})
}

func TestParseMode(t *testing.T) {
	Convey("Given mode strings", t, func() {
		cases := map[string]rotation.Mode{
			"fresh":  rotation.Fresh,
			"FAIR":   rotation.Fair,
			" fair ": rotation.Fair,
			"1":      rotation.Fresh,
			"2":      rotation.Fair,
		}
		for in, want := range cases {
			got, err := rotation.ParseMode(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("When the string is unknown", func() {
			_, err := rotation.ParseMode("random")

			Convey("Then ErrUnknownMode is returned", func() {
				So(errors.Is(err, rotation.ErrUnknownMode), ShouldBeTrue)
			})
		})

		Convey("Then modes render by name", func() {
			So(rotation.Fresh.String(), ShouldEqual, "fresh")
			So(rotation.Fair.String(), ShouldEqual, "fair")
		})
	})
}
