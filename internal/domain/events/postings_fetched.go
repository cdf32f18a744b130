package events

import "time"

var PostingsFetchedTopic = "PostingsFetchedEvent"

type PostingsFetched struct {
	Country   string
	Received  int
	Accepted  int
	Dropped   int
	FetchedAt time.Time
}
