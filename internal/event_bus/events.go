package event_bus

// Event types published by the feed loader.
const (
	// FeedLoaded is published after a source's ICS payload was fetched,
	// parsed, and appended to the event store.
	FeedLoaded EventType = "feed.loaded"
	// FeedFailed is published when fetching or reading a source failed.
	// Parsing itself never fails: unusable blocks are dropped silently.
	FeedFailed EventType = "feed.failed"
)

// FeedLoadedData is the payload for FeedLoaded.
type FeedLoadedData struct {
	Source     string
	EventCount int
}

// FeedFailedData is the payload for FeedFailed.
type FeedFailedData struct {
	Source string
	Err    error
}
