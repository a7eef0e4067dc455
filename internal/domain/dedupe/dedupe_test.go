package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/flightdesk/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d, ShouldNotBeNil)

		Convey("When the id is new", func() {
			seen := d.SeenAndRecord(ctx, "P001")

			Convey("Then it should return false", func() {
				So(seen, ShouldBeFalse)
			})
		})

		Convey("When the id was already seen", func() {
			d.SeenAndRecord(ctx, "P001")
			seen := d.SeenAndRecord(ctx, " P001 ")

			Convey("Then surrounding space is ignored and it returns true", func() {
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When ids differ only by case", func() {
			d.SeenAndRecord(ctx, "P001")

			Convey("Then they are distinct", func() {
				So(d.SeenAndRecord(ctx, "p001"), ShouldBeFalse)
			})
		})

		Convey("When recording concurrently", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			fresh := 0
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i%10)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}(i)
			}
			wg.Wait()

			Convey("Then each id is fresh exactly once", func() {
				So(fresh, ShouldEqual, 10)
			})
		})
	})
}
