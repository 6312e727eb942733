package service_test

import (
	"context"
	"testing"

	service "github.com/okian/subjectscore/internal/app"
	"github.com/okian/subjectscore/internal/domain/types"
	"github.com/okian/subjectscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxBatchSize(), ShouldEqual, 1000)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithMaxBatchSize(5),
			service.WithCacheSize(100),
			service.WithSpamTerms([]string{"bitcoin"}),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxBatchSize(), ShouldEqual, 5)
		})
	})
}

func TestService_ScoreBatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When scoring a mixed batch", func() {
			result := svc.ScoreBatch(ctx, []string{"Hi", "WINNER!! FREE FREE FREE", ""})

			Convey("Then reports come back in input order", func() {
				So(result.Results, ShouldHaveLength, 3)
				So(result.Results[0].Subject, ShouldEqual, "Hi")
				So(result.Results[0].Score, ShouldEqual, 100)
				So(result.Results[1].SpamRisk, ShouldEqual, types.RiskHigh)
				So(result.Results[2].Warnings, ShouldResemble, []string{"Empty subject line"})
				So(result.BestSubject, ShouldEqual, "Hi")
			})
		})

		Convey("When scoring an empty batch", func() {
			result := svc.ScoreBatch(ctx, nil)

			Convey("Then the result is empty but well-formed", func() {
				So(result.Results, ShouldBeEmpty)
				So(result.Results, ShouldNotBeNil)
				So(result.BestSubject, ShouldEqual, "")
			})
		})

		Convey("When scoring the same subject twice", func() {
			first := svc.ScoreBatch(ctx, []string{"Quick question"})
			second := svc.ScoreBatch(ctx, []string{"Quick question"})

			Convey("Then the cached report is identical to the fresh one", func() {
				So(second.Results[0], ShouldResemble, first.Results[0])
			})

			Convey("And the cache hit shows up in stats", func() {
				stats := svc.GetStats()
				So(stats["cacheHits"], ShouldEqual, int64(1))
			})
		})

		Convey("When inspecting stats", func() {
			svc.ScoreBatch(ctx, []string{"one", "two"})
			stats := svc.GetStats()

			Convey("Then counters reflect the work done", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["batchesScored"], ShouldEqual, int64(1))
				So(stats["subjectsScored"], ShouldEqual, int64(2))
				So(stats["cacheSize"], ShouldEqual, int64(2))
			})
		})
	})

	Convey("Given a service with a custom spam term list", t, func() {
		svc := service.New(service.WithSpamTerms([]string{"bitcoin"}))
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When scoring against the custom list", func() {
			result := svc.ScoreBatch(ctx, []string{"free bitcoin"})

			Convey("Then only the custom term fires", func() {
				So(result.Results[0].Warnings, ShouldResemble, []string{"Spam term detected: 'bitcoin'"})
				So(result.Results[0].Score, ShouldEqual, 80)
			})
		})
	})

	Convey("Given a service with the cache disabled", t, func() {
		svc := service.New(service.WithCacheSize(0))
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When scoring the same subject twice", func() {
			first := svc.ScoreBatch(ctx, []string{"Quick question"})
			second := svc.ScoreBatch(ctx, []string{"Quick question"})

			Convey("Then behavior is unchanged and nothing is cached", func() {
				So(second.Results[0], ShouldResemble, first.Results[0])
				stats := svc.GetStats()
				So(stats["cacheHits"], ShouldEqual, int64(0))
				So(stats["cacheSize"], ShouldEqual, int64(0))
			})
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When started twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the second start is a no-op", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
			})
		})

		Convey("When stopped without starting", func() {
			svc.Stop()

			Convey("Then nothing happens", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeFalse)
			})
		})
	})
}
