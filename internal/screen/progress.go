package screen

// Observer receives progress after every symbol, priced or skipped. How
// progress is rendered is entirely the observer's business.
type Observer interface {
	Progress(done, total int)
}

// ObserverFunc is a function adapter for Observer.
type ObserverFunc func(done, total int)

func (f ObserverFunc) Progress(done, total int) { f(done, total) }
