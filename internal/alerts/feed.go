package alerts

// Feed accumulates surfaced alerts. Entries are only ever appended; Reset is
// the one way to clear them.
type Feed struct {
	catalog Catalog
	active  []Alert
}

// NewFeed creates an empty feed over the given catalog. A nil catalog
// selects DefaultCatalog.
func NewFeed(catalog Catalog) *Feed {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Feed{catalog: append(Catalog(nil), catalog...)}
}

// Surface appends every alert triggered on day and returns the newly
// surfaced ones.
func (f *Feed) Surface(day int) []Alert {
	surfaced := f.catalog.ForDay(day)
	f.active = append(f.active, surfaced...)
	return surfaced
}

// Active returns a copy of every alert surfaced so far, oldest first.
func (f *Feed) Active() []Alert {
	return append([]Alert(nil), f.active...)
}

// Reset clears every surfaced alert.
func (f *Feed) Reset() {
	f.active = nil
}
