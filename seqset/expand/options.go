package expand

// Options bounds how many pop-front descendants a dedup/expand pass
// emits per entry, and how far apart (in popped bases) they are (spec
// §4.D: "stride 16 count 255 on the first pass; stride 1 count 15 on
// the second pass").
type Options struct {
	Stride1, Count1 int
	Stride2, Count2 int
}

// DefaultOptions returns the stride/count pair the reference
// implementation uses.
func DefaultOptions() Options {
	return Options{Stride1: 16, Count1: 255, Stride2: 1, Count2: 15}
}
