/*
Package trie implements a static, compact double-array trie over a sorted
list of lowercase ASCII words.

Every node is a single 32-bit unit:

	bit 31      value flag (set only on value units)
	bits 10..31 offset, shifted left by 8 when bit 9 is set
	bit 9       offset scale selector
	bit 8       leaf flag, the node owns a terminal value
	bits 0..7   label of the incoming edge

A child of node n labelled c lives at offset(n) ^ n ^ c and is accepted only
when its stored label equals c. The value of a leaf node lives at
offset(n) ^ n, i.e. the child labelled 0, which is why words may not contain
NUL bytes.

The trie is read-only once built; all queries are safe for concurrent use.
*/
package trie

import "encoding/binary"

const (
	leafBit        = 1 << 8
	largeOffsetBit = 1 << 9
	valueBit       = 1 << 31
	labelMask      = valueBit | 0xFF

	// MaxValue is the largest word id a unit can hold.
	MaxValue = 1<<31 - 1
)

// Trie is an immutable double-array trie mapping words to their ids.
type Trie struct {
	units []uint32
}

// Root returns the position of the root node.
func (t *Trie) Root() uint32 {
	return 0
}

// Child follows the edge labelled c from node.
func (t *Trie) Child(node uint32, c byte) (uint32, bool) {
	// label 0 addresses the value unit, never a child node
	if c == 0 || int(node) >= len(t.units) {
		return 0, false
	}
	next := unitOffset(t.units[node]) ^ node ^ uint32(c)
	if int(next) >= len(t.units) || unitLabel(t.units[next]) != uint32(c) {
		return 0, false
	}
	return next, true
}

// Value returns the word id stored at node, if node terminates a word.
func (t *Trie) Value(node uint32) (int, bool) {
	if int(node) >= len(t.units) {
		return 0, false
	}
	u := t.units[node]
	if !unitHasLeaf(u) {
		return 0, false
	}
	pos := unitOffset(u) ^ node
	if int(pos) >= len(t.units) {
		return 0, false
	}
	return int(unitValue(t.units[pos])), true
}

// Lookup walks word from the root and returns its id.
func (t *Trie) Lookup(word string) (int, bool) {
	node := t.Root()
	for i := 0; i < len(word); i++ {
		var ok bool
		if node, ok = t.Child(node, word[i]); !ok {
			return 0, false
		}
	}
	return t.Value(node)
}

// Terminals calls fn with the id of every word reachable from the root,
// stopping early when fn returns false. Each node is visited once, so
// corrupt unit arrays cannot make it loop.
func (t *Trie) Terminals(fn func(id int) bool) {
	if len(t.units) == 0 {
		return
	}
	visited := make([]bool, len(t.units))
	visited[t.Root()] = true
	stack := []uint32{t.Root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id, ok := t.Value(node); ok && !fn(id) {
			return
		}
		for c := 1; c <= 0xFF; c++ {
			if child, ok := t.Child(node, byte(c)); ok && !visited[child] {
				visited[child] = true
				stack = append(stack, child)
			}
		}
	}
}

// NumUnits returns the number of units in the double array.
func (t *Trie) NumUnits() int {
	return len(t.units)
}

// SizeInBytes returns the memory held by the unit array.
func (t *Trie) SizeInBytes() int {
	return len(t.units) * 4
}

// MarshalBinary encodes the units as little-endian 32-bit words.
func (t *Trie) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 4*len(t.units))
	for i, u := range t.units {
		binary.LittleEndian.PutUint32(buf[4*i:], u)
	}
	return buf, nil
}

// UnmarshalBinary restores a trie produced by MarshalBinary.
func (t *Trie) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || len(data)%4 != 0 {
		return ErrCorruptData
	}
	units := make([]uint32, len(data)/4)
	for i := range units {
		units[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	t.units = units
	return nil
}

func unitHasLeaf(u uint32) bool {
	return u&leafBit != 0
}

func unitValue(u uint32) uint32 {
	return u & MaxValue
}

func unitLabel(u uint32) uint32 {
	return u & labelMask
}

func unitOffset(u uint32) uint32 {
	return (u >> 10) << ((u & largeOffsetBit) >> 6)
}
