package layout

// Default grid geometry.
const (
	defaultBufferMinutes = 15
	defaultHeaderRows    = 1
	defaultLabelColumns  = 2
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithOverlapBuffer sets how many minutes two events may touch without
// counting as overlapping.
func WithOverlapBuffer(minutes int) Option {
	return func(r *Resolver) {
		if minutes >= 0 {
			r.buffer = minutes
		}
	}
}

// WithHeaderRows sets the number of grid rows above the first slot.
func WithHeaderRows(rows int) Option {
	return func(r *Resolver) {
		if rows >= 0 {
			r.headerRows = rows
		}
	}
}

// WithLabelColumns sets the number of grid columns left of the first venue.
func WithLabelColumns(cols int) Option {
	return func(r *Resolver) {
		if cols >= 0 {
			r.labelColumns = cols
		}
	}
}
