// Package items holds the fixed, ordered list of entries shown by the outer
// list. Entries are immutable once constructed.
package items

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindPlain   Kind = 1
	KindGallery Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindGallery:
		return "gallery"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var ErrDuplicateGalleryID = errors.New("duplicate gallery id")

// Entry is either a plain text entry or a gallery of numbers. Kind tells
// which fields are meaningful.
type Entry struct {
	Kind    Kind
	Text    string
	ID      int
	numbers []int
}

func Plain(text string) Entry {
	return Entry{Kind: KindPlain, Text: text}
}

func Gallery(id int, numbers ...int) Entry {
	return Entry{
		Kind:    KindGallery,
		ID:      id,
		numbers: append([]int(nil), numbers...),
	}
}

// Numbers returns a copy of the gallery numbers.
func (e Entry) Numbers() []int {
	return append([]int(nil), e.numbers...)
}

func (e Entry) NumberCount() int {
	return len(e.numbers)
}

// IndexError reports an out-of-range index. It is raised as a panic value.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("item index %d out of range [0,%d)", e.Index, e.Len)
}

type List struct {
	entries []Entry
}

func NewList(entries ...Entry) *List {
	return &List{entries: append([]Entry(nil), entries...)}
}

// Default returns the demo list the screen ships with.
func Default() *List {
	return NewList(
		Plain("text1"),
		Gallery(1, 1, 2, 4, 5, 6, 7, 8, 9),
		Gallery(2, 31, 32, 34, 35, 36, 37, 38, 39),
		Plain("text2"),
		Plain("text3"),
		Plain("text4"),
		Plain("text5"),
		Plain("text6"),
		Plain("text7"),
		Plain("text8"),
		Plain("text9"),
		Plain("text10"),
		Gallery(3, 10, 20, 40, 50, 60, 70, 80, 90),
		Plain("text11"),
		Plain("text12"),
		Plain("text13"),
		Plain("text14"),
	)
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

func (l *List) At(index int) Entry {
	if index < 0 || index >= l.Len() {
		panic(IndexError{Index: index, Len: l.Len()})
	}
	return l.entries[index]
}

func (l *List) KindOf(index int) Kind {
	return l.At(index).Kind
}

// GalleryIndex returns the list index of the gallery with the given id, or -1.
func (l *List) GalleryIndex(id int) int {
	for i := 0; i < l.Len(); i++ {
		if l.entries[i].Kind == KindGallery && l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate reports gallery ids used by more than one entry. Such entries
// share a selected page and a hosting unit.
func (l *List) Validate() error {
	seen := make(map[int]int)
	for i := 0; i < l.Len(); i++ {
		e := l.entries[i]
		if e.Kind != KindGallery {
			continue
		}
		if first, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: id %d at index %d and %d", ErrDuplicateGalleryID, e.ID, first, i)
		}
		seen[e.ID] = i
	}
	return nil
}
