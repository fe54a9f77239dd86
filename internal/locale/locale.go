// Package locale provides Swedish-collation string ordering for labels.
// Plain byte ordering is wrong for å/ä/ö, which sort after z in Swedish.
package locale

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	mu  sync.Mutex
	col = collate.New(language.Swedish, collate.Loose)
)

// Less reports whether a sorts before b under Swedish collation.
func Less(a, b string) bool {
	mu.Lock()
	defer mu.Unlock()
	return col.CompareString(a, b) < 0
}

// Compare returns -1, 0, or +1 per Swedish collation.
func Compare(a, b string) int {
	mu.Lock()
	defer mu.Unlock()
	return col.CompareString(a, b)
}

// SortStrings sorts s in place under Swedish collation.
func SortStrings(s []string) {
	mu.Lock()
	defer mu.Unlock()
	col.SortStrings(s)
}
