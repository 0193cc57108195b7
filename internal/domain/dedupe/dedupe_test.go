package dedupe_test

import (
	"context"
	"strings"
	"testing"

	dedupe "github.com/okian/rota/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should be empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Duplicates(), ShouldBeEmpty)
			})
		})

		Convey("When recording names", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the name is new", func() {
				seen := d.SeenAndRecord(ctx, "Clara Gomes")

				Convey("Then it should return false and record the name", func() {
					So(seen, ShouldBeFalse)
					So(d.Duplicates(), ShouldBeEmpty)
				})
			})

			Convey("And the name repeats", func() {
				d.SeenAndRecord(ctx, "Clara Gomes")
				seen := d.SeenAndRecord(ctx, "Clara Gomes")

				Convey("Then it should return true and list the duplicate", func() {
					So(seen, ShouldBeTrue)
					So(d.Duplicates(), ShouldResemble, []string{"Clara Gomes"})
				})
			})

			Convey("And the repeat only differs by surrounding spaces", func() {
				d.SeenAndRecord(ctx, "Sabrina")
				seen := d.SeenAndRecord(ctx, "  Sabrina ")

				Convey("Then it still counts as a repeat", func() {
					So(seen, ShouldBeTrue)
				})
			})

			Convey("And the repeat differs by case", func() {
				d.SeenAndRecord(ctx, "Sabrina")
				seen := d.SeenAndRecord(ctx, "sabrina")

				Convey("Then it is a different person by default", func() {
					So(seen, ShouldBeFalse)
					So(d.Duplicates(), ShouldBeEmpty)
				})
			})
		})

		Convey("When case folding is enabled", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithCaseFold(true))
			d.SeenAndRecord(ctx, "Sabrina")

			Convey("Then a different case is a repeat", func() {
				So(d.SeenAndRecord(ctx, "SABRINA"), ShouldBeTrue)
				So(d.Duplicates(), ShouldResemble, []string{"SABRINA"})
			})
		})

		Convey("When a custom normalizer is set", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithNormalizer(func(s string) string {
				return strings.Join(strings.Fields(s), " ")
			}))
			d.SeenAndRecord(ctx, "Maria  Clara")

			Convey("Then it is used for comparison", func() {
				So(d.SeenAndRecord(ctx, "Maria Clara"), ShouldBeTrue)
			})
		})
	})
}
