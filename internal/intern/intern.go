// Package intern provides a sharded, thread-safe string interning
// table mapping gene identifiers to dense integer indices, used while
// parsing feature files and building large gene-identifier maps.
package intern

import (
	"sync"

	"github.com/blainsmith/seahash"
)

const numShards = 1024

type shard struct {
	mu  sync.Mutex
	ids map[string]int
}

// Table interns strings to stable, dense integer indices assigned in
// first-seen order. Safe for concurrent use.
type Table struct {
	shards [numShards]shard
	mu     sync.Mutex
	next   int
}

// New creates an empty interning table.
func New() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].ids = make(map[string]int)
	}
	return t
}

func (t *Table) shardFor(s string) *shard {
	h := seahash.Sum64([]byte(s))
	return &t.shards[h%uint64(numShards)]
}

// Intern returns s's index, assigning it the next free index the first
// time s is seen.
func (t *Table) Intern(s string) int {
	sh := t.shardFor(s)
	sh.mu.Lock()
	if ix, ok := sh.ids[s]; ok {
		sh.mu.Unlock()
		return ix
	}
	sh.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if ix, ok := sh.ids[s]; ok {
		return ix
	}
	ix := t.next
	t.next++
	sh.ids[s] = ix
	return ix
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}
