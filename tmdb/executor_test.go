package tmdb_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lepinkainen/tmdbkit/internal/testutil"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

const matrixBody = `{"id": 603, "title": "The Matrix", "release_date": "1999-03-30"}`

type failingDoer struct {
	err   error
	calls atomic.Int32
}

func (f *failingDoer) Do(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, f.err
}

var _ = Describe("Executor", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		srv    *testutil.Server
		client *tmdb.Client
		delays []time.Duration
		now    time.Time
		logger *slog.Logger
	)

	newClient := func(opts ...tmdb.Option) *tmdb.Client {
		base := []tmdb.Option{
			tmdb.WithBaseURL(srv.BaseURL()),
			tmdb.WithHTTPClient(srv.Client()),
			tmdb.WithLogger(logger),
		}
		c := tmdb.NewClient("test-key", append(base, opts...)...)
		tmdb.SetClock(c, func() time.Time { return now })
		tmdb.SetDelayHook(c, func(d time.Duration) time.Duration {
			delays = append(delays, d)
			return 0
		})
		return c
	}

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		srv = testutil.NewServer(GinkgoT())
		delays = nil
		now = time.Unix(1700000000, 0)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		client = newClient()
	})

	AfterEach(func() {
		cancel()
	})

	Context("when the service throttles with 429", func() {
		It("waits Retry-After plus one second and dispatches again", func() {
			var hits atomic.Int32
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				if hits.Add(1) == 1 {
					w.Header().Set("Retry-After", "2")
					testutil.WriteJSON(w, http.StatusTooManyRequests, `{"status_code":25,"status_message":"Your request count is over the allowed limit."}`)
					return
				}
				testutil.WriteJSON(w, http.StatusOK, matrixBody)
			})

			movie, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(movie.Title).To(Equal("The Matrix"))
			Expect(delays).To(Equal([]time.Duration{3 * time.Second}))
			Expect(srv.Hits("/movie/603")).To(Equal(2))
		})

		It("waits one second when Retry-After is missing", func() {
			var hits atomic.Int32
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				if hits.Add(1) == 1 {
					testutil.WriteJSON(w, http.StatusTooManyRequests, "")
					return
				}
				testutil.WriteJSON(w, http.StatusOK, matrixBody)
			})

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(delays).To(Equal([]time.Duration{time.Second}))
		})

		It("gives up with ErrThrottled once the ceiling is reached", func() {
			client = newClient(tmdb.WithMaxThrottleRetries(2))
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "1")
				testutil.WriteJSON(w, http.StatusTooManyRequests, `{"status_code":25,"status_message":"Too many requests"}`)
			})

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).To(MatchError(tmdb.ErrThrottled))

			var svcErr *tmdb.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeTrue())
			Expect(svcErr.StatusCode).To(Equal(http.StatusTooManyRequests))
			Expect(svcErr.ServiceCode).To(Equal(25))
			Expect(srv.Hits("/movie/603")).To(Equal(3))
			Expect(delays).To(HaveLen(2))
		})
	})

	Context("when the quota is exhausted", func() {
		It("waits until one second past the reset and returns the payload without refetching", func() {
			reset := now.Add(5 * time.Second)
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
				testutil.WriteJSON(w, http.StatusOK, matrixBody)
			})

			movie, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(movie.Title).To(Equal("The Matrix"))
			Expect(delays).To(Equal([]time.Duration{6 * time.Second}))
			Expect(srv.Hits("/movie/603")).To(Equal(1))
		})

		It("keeps a large payload readable after a wait longer than the client timeout", func() {
			overview := strings.Repeat("a long overview ", 64*1024)
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(now.Unix(), 10))
				testutil.WriteJSON(w, http.StatusOK, `{"id": 603, "title": "The Matrix", "overview": "`+overview+`"}`)
			})

			// default transport, so the client timeout also covers body reads
			c := tmdb.NewClient("test-key",
				tmdb.WithBaseURL(srv.BaseURL()),
				tmdb.WithTimeout(200*time.Millisecond),
				tmdb.WithLogger(logger),
			)
			tmdb.SetClock(c, func() time.Time { return now })
			tmdb.SetDelayHook(c, func(time.Duration) time.Duration { return 500 * time.Millisecond })

			movie, err := c.Movies.Get(ctx, 603, "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(movie.Title).To(Equal("The Matrix"))
			Expect(movie.Overview).To(HaveLen(len(overview)))
			Expect(srv.Hits("/movie/603")).To(Equal(1))
		})

		It("does not wait when the reset is already in the past", func() {
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(now.Add(-time.Minute).Unix(), 10))
				testutil.WriteJSON(w, http.StatusOK, matrixBody)
			})

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(delays).To(Equal([]time.Duration{0}))
		})
	})

	It("does not wait while calls remain", func() {
		srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-RateLimit-Remaining", "5")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(now.Add(10*time.Second).Unix(), 10))
			testutil.WriteJSON(w, http.StatusOK, matrixBody)
		})

		_, err := client.Movies.Get(ctx, 603, "", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(delays).To(BeEmpty())
		Expect(srv.Hits("/movie/603")).To(Equal(1))
	})

	Context("when the caller cancels", func() {
		It("resolves as cancelled during a throttle delay", func() {
			tmdb.SetDelayHook(client, func(time.Duration) time.Duration {
				cancel()
				return time.Hour
			})
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "30")
				testutil.WriteJSON(w, http.StatusTooManyRequests, "")
			})

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).To(MatchError(context.Canceled))

			var svcErr *tmdb.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeFalse())
			Expect(srv.Hits("/movie/603")).To(Equal(1))
		})

		It("resolves as cancelled while waiting for a quota reset", func() {
			tmdb.SetDelayHook(client, func(time.Duration) time.Duration {
				cancel()
				return time.Hour
			})
			srv.Handle(http.MethodGet, "/movie/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(now.Add(time.Hour).Unix(), 10))
				testutil.WriteJSON(w, http.StatusOK, matrixBody)
			})

			movie, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).To(MatchError(context.Canceled))
			Expect(movie).To(BeNil())
		})

		It("does not dispatch with an already cancelled context", func() {
			srv.JSON(http.MethodGet, "/movie/{id}", http.StatusOK, matrixBody)
			cancel()

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).To(MatchError(context.Canceled))
			Expect(srv.Requests()).To(BeEmpty())
		})
	})

	Context("when the call fails", func() {
		It("returns transport faults untouched and does not retry", func() {
			boom := errors.New("connection reset by peer")
			doer := &failingDoer{err: boom}
			client = newClient(tmdb.WithHTTPClient(doer))

			_, err := client.Movies.Get(ctx, 603, "", false)
			Expect(err).To(MatchError(boom))
			Expect(doer.calls.Load()).To(Equal(int32(1)))
			Expect(delays).To(BeEmpty())
		})

		It("turns the not-found body into a service error", func() {
			_, err := client.Movies.Get(ctx, 999999, "", false)

			var svcErr *tmdb.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeTrue())
			Expect(svcErr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(svcErr.ServiceCode).To(Equal(tmdb.StatusResourceNotFound))
			Expect(tmdb.IsNotFound(err)).To(BeTrue())
			Expect(srv.Hits("/movie/999999")).To(Equal(1))
		})

		It("does not retry server errors", func() {
			srv.JSON(http.MethodGet, "/movie/{id}", http.StatusServiceUnavailable, "")

			_, err := client.Movies.Get(ctx, 603, "", false)

			var svcErr *tmdb.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeTrue())
			Expect(svcErr.Message).To(Equal("Service Unavailable"))
			Expect(srv.Hits("/movie/603")).To(Equal(1))
			Expect(delays).To(BeEmpty())
		})
	})
})
