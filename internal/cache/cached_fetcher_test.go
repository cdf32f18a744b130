package cache

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
	"time"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchPostings(ctx context.Context,
	params smartrecruiters.SearchParameters) ([]smartrecruiters.Posting, error) {
	args := m.Called(ctx, params)
	postings, _ := args.Get(0).([]smartrecruiters.Posting)
	return postings, args.Error(1)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]smartrecruiters.Posting, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []smartrecruiters.Posting, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Close() error { return nil }

func postings(ids ...string) []smartrecruiters.Posting {
	result := make([]smartrecruiters.Posting, 0, len(ids))
	for _, id := range ids {
		result = append(result, smartrecruiters.Posting{
			ID:   smartrecruiters.NewFlexString(id),
			Name: smartrecruiters.NewFlexString("Job " + id),
		})
	}
	return result
}

func Test_CachedFetcher_SecondCall_ShouldBeServedFromCache(t *testing.T) {

	params := smartrecruiters.SearchParameters{Country: "br"}
	fetcher := &mockFetcher{}
	fetcher.On("FetchPostings", mock.Anything, params).Return(postings("1", "2"), nil).Once()

	cached := NewCachedFetcher(fetcher, NewMemoryStore(time.Minute), time.Minute)

	first, err := cached.FetchPostings(context.Background(), params)
	assert.NoError(t, err)
	second, err := cached.FetchPostings(context.Background(), params)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	fetcher.AssertNumberOfCalls(t, "FetchPostings", 1)
}

func Test_CachedFetcher_DifferentParameters_ShouldUseDifferentEntries(t *testing.T) {

	br := smartrecruiters.SearchParameters{Country: "br"}
	pt := smartrecruiters.SearchParameters{Country: "pt"}
	fetcher := &mockFetcher{}
	fetcher.On("FetchPostings", mock.Anything, br).Return(postings("1"), nil).Once()
	fetcher.On("FetchPostings", mock.Anything, pt).Return(postings("2", "3"), nil).Once()

	cached := NewCachedFetcher(fetcher, NewMemoryStore(time.Minute), time.Minute)

	brPostings, _ := cached.FetchPostings(context.Background(), br)
	ptPostings, _ := cached.FetchPostings(context.Background(), pt)

	assert.Len(t, brPostings, 1)
	assert.Len(t, ptPostings, 2)
	fetcher.AssertExpectations(t)
}

func Test_CachedFetcher_WhenUpstreamFails_ShouldNotCacheFailure(t *testing.T) {

	params := smartrecruiters.SearchParameters{}
	upstreamErr := &smartrecruiters.FetchError{Kind: smartrecruiters.KindTimeout, Err: context.DeadlineExceeded}
	fetcher := &mockFetcher{}
	fetcher.On("FetchPostings", mock.Anything, params).Return(nil, upstreamErr).Once()
	fetcher.On("FetchPostings", mock.Anything, params).Return(postings("1"), nil).Once()

	cached := NewCachedFetcher(fetcher, NewMemoryStore(time.Minute), time.Minute)

	_, err := cached.FetchPostings(context.Background(), params)
	assert.ErrorIs(t, err, upstreamErr)

	result, err := cached.FetchPostings(context.Background(), params)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func Test_CachedFetcher_WhenStoreFails_ShouldFallBackToUpstream(t *testing.T) {

	params := smartrecruiters.SearchParameters{}
	fetcher := &mockFetcher{}
	fetcher.On("FetchPostings", mock.Anything, params).Return(postings("1"), nil).Twice()

	cached := NewCachedFetcher(fetcher, failingStore{}, time.Minute)

	for i := 0; i < 2; i++ {
		result, err := cached.FetchPostings(context.Background(), params)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
	}
	fetcher.AssertExpectations(t)
}

func Test_CachedFetcher_Refresh_ShouldBypassCachedEntry(t *testing.T) {

	params := smartrecruiters.SearchParameters{}
	fetcher := &mockFetcher{}
	fetcher.On("FetchPostings", mock.Anything, params).Return(postings("1"), nil).Once()
	fetcher.On("FetchPostings", mock.Anything, params).Return(postings("1", "2", "3"), nil).Once()

	cached := NewCachedFetcher(fetcher, NewMemoryStore(time.Minute), time.Minute)
	_, _ = cached.FetchPostings(context.Background(), params)

	count, err := cached.Refresh(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	result, _ := cached.FetchPostings(context.Background(), params)
	assert.Len(t, result, 3)
	fetcher.AssertExpectations(t)
}

func Test_MemoryStore_ShouldReturnCopies(t *testing.T) {

	store := NewMemoryStore(time.Minute)
	original := postings("1", "2")
	assert.NoError(t, store.Set(context.Background(), "key", original, 0))

	original[0].Name = smartrecruiters.NewFlexString("changed")
	cached, found, err := store.Get(context.Background(), "key")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Job 1", cached[0].Name.String())

	cached[1].Name = smartrecruiters.NewFlexString("changed too")
	again, _, _ := store.Get(context.Background(), "key")
	assert.Equal(t, "Job 2", again[1].Name.String())
}

func Test_MemoryStore_EntryExpires(t *testing.T) {

	store := NewMemoryStore(time.Minute)
	assert.NoError(t, store.Set(context.Background(), "key", postings("1"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_, found, err := store.Get(context.Background(), "key")

	assert.NoError(t, err)
	assert.False(t, found)
}
