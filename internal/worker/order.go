package worker

import "golang.org/x/exp/slices"

// Ordered reads results until the channel closes and passes them to fn in
// index order starting from 0. Results after a gap in the indices are held
// back until the channel closes and then delivered in order. Once fn
// returns an error the channel is drained without further calls and that
// error is returned.
func Ordered(results <-chan ProcessResult, fn func(ProcessResult) error) error {
	pending := make(map[int]ProcessResult)
	next := 0
	var firstErr error

	emit := func(r ProcessResult) {
		if firstErr == nil {
			firstErr = fn(r)
		}
	}

	for r := range results {
		pending[r.Index] = r
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(p)
			next++
		}
	}

	rest := make([]int, 0, len(pending))
	for i := range pending {
		rest = append(rest, i)
	}
	slices.Sort(rest)
	for _, i := range rest {
		emit(pending[i])
	}
	return firstErr
}
