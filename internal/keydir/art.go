package keydir

import (
	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/backbone81/walkv/internal/encoding"
)

// ART is an Index backed by the adaptive radix tree of github.com/plar/go-adaptive-radix-tree.
//
// The zero-length key is kept next to the tree.
type ART struct {
	tree art.Tree

	emptyKeyValue encoding.Value
	hasEmptyKey   bool
}

// ART implements Index.
var _ Index = (*ART)(nil)

// NewART creates an empty ART.
func NewART() *ART {
	return &ART{
		tree: art.New(),
	}
}

func (a *ART) Get(key string) (encoding.Value, bool) {
	if key == "" {
		return a.emptyKeyValue, a.hasEmptyKey
	}
	value, found := a.tree.Search(art.Key(key))
	if !found {
		return encoding.Value{}, false
	}
	return value.(encoding.Value), true //nolint:forcetypeassert // only Put inserts into the tree
}

func (a *ART) Put(key string, value encoding.Value) {
	if key == "" {
		a.emptyKeyValue = value
		a.hasEmptyKey = true
		return
	}
	a.tree.Insert(art.Key(key), value)
}

func (a *ART) Delete(key string) bool {
	if key == "" {
		deleted := a.hasEmptyKey
		a.emptyKeyValue = encoding.Value{}
		a.hasEmptyKey = false
		return deleted
	}
	_, deleted := a.tree.Delete(art.Key(key))
	return deleted
}

func (a *ART) Len() int {
	if a.hasEmptyKey {
		return a.tree.Size() + 1
	}
	return a.tree.Size()
}

func (a *ART) Keys() []string {
	keys := make([]string, 0, a.Len())
	if a.hasEmptyKey {
		keys = append(keys, "")
	}
	a.tree.ForEach(func(node art.Node) bool {
		keys = append(keys, string(node.Key()))
		return true
	})
	return keys
}
