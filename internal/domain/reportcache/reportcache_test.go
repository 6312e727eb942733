package reportcache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/subjectscore/internal/domain/reportcache"
	"github.com/okian/subjectscore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func report(subject string, score int) types.Report {
	return types.Report{
		Subject:  subject,
		Score:    score,
		Length:   len(subject),
		SpamRisk: types.RiskLow,
		Warnings: []string{},
	}
}

func TestInMemoryCache(t *testing.T) {
	Convey("Given a bounded report cache", t, func() {
		cache := reportcache.NewInMemoryCache(reportcache.WithMaxSize(3))
		ctx := context.Background()

		Convey("When a report is stored", func() {
			cache.Put(ctx, "Hi", report("Hi", 100))

			Convey("Then it can be retrieved exactly", func() {
				r, ok := cache.Get(ctx, "Hi")
				So(ok, ShouldBeTrue)
				So(r, ShouldResemble, report("Hi", 100))
				So(cache.Size(), ShouldEqual, 1)
			})

			Convey("And a missing subject is not found", func() {
				_, ok := cache.Get(ctx, "Bye")
				So(ok, ShouldBeFalse)
			})

			Convey("And storing the same subject again does not grow the cache", func() {
				cache.Put(ctx, "Hi", report("Hi", 100))
				So(cache.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the cache overflows", func() {
			for i := 0; i < 4; i++ {
				subject := fmt.Sprintf("subject-%d", i)
				cache.Put(ctx, subject, report(subject, 100))
			}

			Convey("Then the oldest entry is evicted first", func() {
				So(cache.Size(), ShouldEqual, 3)
				_, ok := cache.Get(ctx, "subject-0")
				So(ok, ShouldBeFalse)
				_, ok = cache.Get(ctx, "subject-3")
				So(ok, ShouldBeTrue)
			})
		})
	})

	Convey("Given a disabled cache", t, func() {
		cache := reportcache.NewInMemoryCache(reportcache.WithMaxSize(0))
		ctx := context.Background()

		Convey("When a report is stored", func() {
			cache.Put(ctx, "Hi", report("Hi", 100))

			Convey("Then nothing is cached", func() {
				_, ok := cache.Get(ctx, "Hi")
				So(ok, ShouldBeFalse)
				So(cache.Size(), ShouldEqual, 0)
			})
		})
	})
}
