package bfscrawl

// Observer is notified of crawl progress, typically to export metrics.
// Calls are made from the crawl loop and must not block.
type Observer interface {
	LevelStarted(level int)
	PageVisited(url string, level int)
	FetchFailed(url string, err error)
	LinkAdmitted(url string, level int)
	LinkRejected(reason Reason)
}
