package group

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a patricia trie over item titles.
// Titles are stored verbatim, so lookups are case-sensitive.
type Index struct {
	trie  *patricia.Trie
	count int
}

// NewIndex builds an index from items. Duplicate titles are stored once
// and empty titles are skipped.
func NewIndex(items []Item) *Index {
	idx := &Index{trie: patricia.NewTrie()}
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if idx.trie.Insert(patricia.Prefix(item.Title), struct{}{}) {
			idx.count++
		}
	}
	return idx
}

// Has reports whether title is an exact item title.
func (idx *Index) Has(title string) bool {
	if idx == nil || title == "" {
		return false
	}
	return idx.trie.Match(patricia.Prefix(title))
}

// Prefixed returns the titles starting with prefix, in trie order.
func (idx *Index) Prefixed(prefix string) []string {
	if idx == nil {
		return nil
	}

	var titles []string
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		titles = append(titles, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting title subtree: %v", err)
	}
	return titles
}

// Len returns the number of distinct titles.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.count
}
