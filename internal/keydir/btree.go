package keydir

import (
	"github.com/google/btree"

	"github.com/backbone81/walkv/internal/encoding"
)

// btreeDegree is the degree of the btree nodes.
const btreeDegree = 32

type btreeItem struct {
	key   string
	value encoding.Value
}

func btreeLess(a btreeItem, b btreeItem) bool {
	return a.key < b.key
}

// BTree is an Index backed by github.com/google/btree.
type BTree struct {
	tree *btree.BTreeG[btreeItem]
}

// BTree implements Index.
var _ Index = (*BTree)(nil)

// NewBTree creates an empty BTree.
func NewBTree() *BTree {
	return &BTree{
		tree: btree.NewG(btreeDegree, btreeLess),
	}
}

func (t *BTree) Get(key string) (encoding.Value, bool) {
	item, ok := t.tree.Get(btreeItem{key: key})
	return item.value, ok
}

func (t *BTree) Put(key string, value encoding.Value) {
	t.tree.ReplaceOrInsert(btreeItem{key: key, value: value})
}

func (t *BTree) Delete(key string) bool {
	_, ok := t.tree.Delete(btreeItem{key: key})
	return ok
}

func (t *BTree) Len() int {
	return t.tree.Len()
}

func (t *BTree) Keys() []string {
	keys := make([]string, 0, t.tree.Len())
	t.tree.Ascend(func(item btreeItem) bool {
		keys = append(keys, item.key)
		return true
	})
	return keys
}
