package positions

// Store maps a gallery id to its selected page. Absent ids read as page 0.
// It is not safe for concurrent use; the screen mutates it from its update
// loop only.
type Store struct {
	pages map[int]int
}

func NewStore() *Store {
	return &Store{pages: make(map[int]int)}
}

func (s *Store) Get(galleryID int) int {
	return s.pages[galleryID]
}

func (s *Store) Set(galleryID, page int) {
	s.pages[galleryID] = page
}

func (s *Store) Len() int {
	return len(s.pages)
}

// Snapshot returns a copy of every stored selection.
func (s *Store) Snapshot() map[int]int {
	out := make(map[int]int, len(s.pages))
	for id, page := range s.pages {
		out[id] = page
	}
	return out
}

// Restore replaces all selections with the given ones.
func (s *Store) Restore(pages map[int]int) {
	s.pages = make(map[int]int, len(pages))
	for id, page := range pages {
		s.pages[id] = page
	}
}

func (s *Store) Clear() {
	s.pages = make(map[int]int)
}
