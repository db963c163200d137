package watched

// Summary holds the derived statistics shown above the watched list
type Summary struct {
	Count         int
	AvgImdbRating float64
	AvgUserRating float64
	// AvgRuntime is averaged over entries with a known runtime only.
	AvgRuntime float64
}

// Summary computes the statistics for the current list.
// An empty list yields zero averages rather than NaN.
func (l *List) Summary() Summary {
	return Summarize(l.entries)
}

// Summarize computes the statistics for entries. Ratings are averaged over
// every entry; the runtime mean only over entries with a known runtime.
func Summarize(entries []Entry) Summary {
	s := Summary{Count: len(entries)}
	if s.Count == 0 {
		return s
	}

	var imdb, user, runtime float64
	var timed int
	for _, e := range entries {
		imdb += e.ImdbRating
		user += e.UserRating
		if e.Runtime != nil {
			runtime += float64(*e.Runtime)
			timed++
		}
	}

	s.AvgImdbRating = imdb / float64(s.Count)
	s.AvgUserRating = user / float64(s.Count)
	if timed > 0 {
		s.AvgRuntime = runtime / float64(timed)
	}
	return s
}
