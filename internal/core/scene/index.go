package scene

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"chosenoffset.com/facing/internal/core/geom"
)

// boxPadding widens every box so that axis-aligned segments get a non-zero
// extent and touching boxes still overlap.
const boxPadding = 1e-6

type indexEntry struct {
	shape int
	rect  rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is a broad-phase R-tree over the shapes of a scene.
type Index struct {
	tree    *rtreego.Rtree
	entries []*indexEntry
}

// NewIndex builds an index over shapes. Shape positions in the slice are the
// identifiers returned by queries.
func NewIndex(shapes []Shape) (*Index, error) {
	idx := &Index{
		tree:    rtreego.NewTree(2, 2, 8),
		entries: make([]*indexEntry, len(shapes)),
	}
	for i, sh := range shapes {
		rect, err := boundsRect(sh.Segment.Bounds())
		if err != nil {
			return nil, errors.Wrapf(err, "could not index segment %q", sh.Name)
		}
		e := &indexEntry{shape: i, rect: rect}
		idx.entries[i] = e
		idx.tree.Insert(e)
	}
	return idx, nil
}

// Len returns the number of indexed shapes.
func (idx *Index) Len() int {
	return idx.tree.Size()
}

// Candidates returns the shapes after i whose boxes overlap shape i, in
// ascending order. Each unordered pair is reported once over all i.
func (idx *Index) Candidates(i int) []int {
	found := idx.tree.SearchIntersect(idx.entries[i].rect)
	out := make([]int, 0, len(found))
	for _, sp := range found {
		j := sp.(*indexEntry).shape
		if j > i {
			out = append(out, j)
		}
	}
	sort.Ints(out)
	return out
}

// Search returns every shape whose box overlaps b.
func (idx *Index) Search(b geom.Bounds) ([]int, error) {
	rect, err := boundsRect(b)
	if err != nil {
		return nil, err
	}
	found := idx.tree.SearchIntersect(rect)
	out := make([]int, 0, len(found))
	for _, sp := range found {
		out = append(out, sp.(*indexEntry).shape)
	}
	sort.Ints(out)
	return out, nil
}

func boundsRect(b geom.Bounds) (rtreego.Rect, error) {
	w, h := b.Size()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X - boxPadding, b.Min.Y - boxPadding},
		[]float64{w + 2*boxPadding, h + 2*boxPadding},
	)
}
