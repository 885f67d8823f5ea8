package trie

import (
	"github.com/bastiangx/goodname/internal/utils"
	"github.com/charmbracelet/log"
)

const (
	blockSize      = 256
	numExtraBlocks = 16
	numExtras      = blockSize * numExtraBlocks

	upperMask = 0xFF << 21
	lowerMask = 0xFF

	maxOffset      = 1 << 29
	maxSmallOffset = 1 << 21
)

// Build validates words and builds a trie where each word maps to its index.
func Build(words []string) (*Trie, error) {
	if err := Validate(words); err != nil {
		return nil, err
	}

	b := newBuilder()
	if err := b.build(words); err != nil {
		return nil, err
	}
	log.Debugf("Built trie: %d words, %d units (%d bytes)", len(words), len(b.units), 4*len(b.units))
	return &Trie{units: b.units}, nil
}

// Record pairs a word with the id its terminal should carry.
type Record struct {
	Word string
	ID   int
}

// FromRecords builds a trie from words with caller-chosen ids. Records must
// satisfy the same ordering and byte rules as Build; ids may repeat and must
// lie in 0..MaxValue.
func FromRecords(records []Record) (*Trie, error) {
	words := make([]string, len(records))
	ids := make([]uint32, len(records))
	for i, r := range records {
		if r.ID < 0 || r.ID > MaxValue {
			return nil, &WordError{Index: i, Word: r.Word, Err: ErrTooLarge}
		}
		words[i] = r.Word
		ids[i] = uint32(r.ID)
	}
	if err := Validate(words); err != nil {
		return nil, err
	}

	b := newBuilder()
	b.ids = ids
	if err := b.build(words); err != nil {
		return nil, err
	}
	log.Debugf("Built trie from %d records, %d units", len(records), len(b.units))
	return &Trie{units: b.units}, nil
}

// Validate checks the preconditions Build relies on and reports the first violation.
func Validate(words []string) error {
	if len(words) == 0 {
		return ErrEmptyWordList
	}
	if len(words) > MaxValue {
		return ErrTooLarge
	}
	for i, w := range words {
		if w == "" {
			return &WordError{Index: i, Word: w, Err: ErrEmptyWord}
		}
		for j := 0; j < len(w); j++ {
			c := w[j]
			switch {
			case c >= 0x80:
				return &WordError{Index: i, Word: w, Err: ErrNonASCIIByte}
			case c == 0:
				return &WordError{Index: i, Word: w, Err: ErrNulByteInWord}
			case utils.IsUpper(c):
				return &WordError{Index: i, Word: w, Err: ErrUppercaseByteInWord}
			}
		}
		if i > 0 && words[i-1] >= w {
			return &WordError{Index: i, Word: w, Err: ErrUnsortedOrDuplicateWords}
		}
	}
	return nil
}

// extraUnit is the bookkeeping kept for units of the most recent blocks.
// Unfixed units form a circular doubly linked list starting at extrasHead.
type extraUnit struct {
	prev, next uint32
	isFixed    bool // unit is reserved as a node or value
	isUsed     bool // unit position is taken as some node's offset
}

type builder struct {
	units      []uint32
	extras     []extraUnit
	extrasHead uint32
	labels     []byte
	// ids overrides the value stored for word i; nil stores i itself.
	ids []uint32
}

func newBuilder() *builder {
	return &builder{
		extras: make([]extraUnit, numExtras),
		labels: make([]byte, 0, 256),
	}
}

func (b *builder) extra(id uint32) *extraUnit {
	return &b.extras[id%numExtras]
}

func (b *builder) numUnits() uint32 {
	return uint32(len(b.units))
}

func (b *builder) numBlocks() uint32 {
	return b.numUnits() / blockSize
}

func (b *builder) build(words []string) error {
	b.reserveID(0)
	b.extra(0).isUsed = true
	if err := b.setOffset(0, 1); err != nil {
		return err
	}
	b.setLabel(0, 0)

	if err := b.buildRecursive(words, 0, len(words), 0, 0); err != nil {
		return err
	}
	b.fixAllBlocks()
	return nil
}

func (b *builder) valueOf(i int) uint32 {
	if b.ids != nil {
		return b.ids[i]
	}
	return uint32(i)
}

// keyAt returns the byte of w at depth, 0 past its end.
func keyAt(w string, depth int) byte {
	if depth < len(w) {
		return w[depth]
	}
	return 0
}

func (b *builder) buildRecursive(words []string, begin, end, depth int, id uint32) error {
	offset, err := b.arrange(words, begin, end, depth, id)
	if err != nil {
		return err
	}

	for begin < end && keyAt(words[begin], depth) == 0 {
		begin++
	}
	if begin == end {
		return nil
	}

	lastBegin := begin
	lastLabel := keyAt(words[begin], depth)
	for begin++; begin < end; begin++ {
		label := keyAt(words[begin], depth)
		if label != lastLabel {
			if err := b.buildRecursive(words, lastBegin, begin, depth+1, offset^uint32(lastLabel)); err != nil {
				return err
			}
			lastBegin, lastLabel = begin, label
		}
	}
	return b.buildRecursive(words, lastBegin, end, depth+1, offset^uint32(lastLabel))
}

// arrange places the children of node id and returns the chosen offset.
func (b *builder) arrange(words []string, begin, end, depth int, id uint32) (uint32, error) {
	b.labels = b.labels[:0]
	value, hasValue := uint32(0), false
	for i := begin; i < end; i++ {
		label := keyAt(words[i], depth)
		if label == 0 && !hasValue {
			value, hasValue = b.valueOf(i), true
		}
		if n := len(b.labels); n == 0 || label != b.labels[n-1] {
			if n > 0 && label < b.labels[n-1] {
				return 0, &WordError{Index: i, Word: words[i], Err: ErrUnsortedOrDuplicateWords}
			}
			b.labels = append(b.labels, label)
		}
	}

	offset := b.findValidOffset(id)
	if err := b.setOffset(id, id^offset); err != nil {
		return 0, err
	}
	for _, label := range b.labels {
		child := offset ^ uint32(label)
		b.reserveID(child)
		if label == 0 {
			b.units[id] |= leafBit
			b.units[child] = value | valueBit
		} else {
			b.setLabel(child, label)
		}
	}
	b.extra(offset).isUsed = true
	return offset, nil
}

func (b *builder) findValidOffset(id uint32) uint32 {
	if b.extrasHead >= b.numUnits() {
		return b.numUnits() | (id & lowerMask)
	}
	unfixed := b.extrasHead
	for {
		offset := unfixed ^ uint32(b.labels[0])
		if b.isValidOffset(id, offset) {
			return offset
		}
		unfixed = b.extra(unfixed).next
		if unfixed == b.extrasHead {
			break
		}
	}
	return b.numUnits() | (id & lowerMask)
}

func (b *builder) isValidOffset(id, offset uint32) bool {
	if b.extra(offset).isUsed {
		return false
	}
	// a relative offset has to fit one of the two scales
	rel := id ^ offset
	if rel&lowerMask != 0 && rel&upperMask != 0 {
		return false
	}
	for _, label := range b.labels[1:] {
		if b.extra(offset ^ uint32(label)).isFixed {
			return false
		}
	}
	return true
}

func (b *builder) setOffset(id, offset uint32) error {
	if offset >= maxOffset {
		return ErrTooLarge
	}
	u := b.units[id] & (valueBit | leafBit | 0xFF)
	if offset < maxSmallOffset {
		u |= offset << 10
	} else {
		u |= offset<<2 | largeOffsetBit
	}
	b.units[id] = u
	return nil
}

func (b *builder) setLabel(id uint32, label byte) {
	b.units[id] = b.units[id]&^0xFF | uint32(label)
}

func (b *builder) reserveID(id uint32) {
	if id >= b.numUnits() {
		b.expandUnits()
	}
	if id == b.extrasHead {
		b.extrasHead = b.extra(id).next
		if b.extrasHead == id {
			b.extrasHead = b.numUnits()
		}
	}
	e := b.extra(id)
	b.extra(e.prev).next = e.next
	b.extra(e.next).prev = e.prev
	e.isFixed = true
}

func (b *builder) expandUnits() {
	src := b.numUnits()
	srcBlocks := b.numBlocks()
	dest := src + blockSize
	destBlocks := srcBlocks + 1

	// the oldest block leaves the window and its extras slots get recycled
	if destBlocks > numExtraBlocks {
		b.fixBlock(srcBlocks - numExtraBlocks)
	}
	b.units = append(b.units, make([]uint32, blockSize)...)
	if destBlocks > numExtraBlocks {
		for id := src; id < dest; id++ {
			e := b.extra(id)
			e.isUsed = false
			e.isFixed = false
		}
	}

	for id := src + 1; id < dest; id++ {
		b.extra(id - 1).next = id
		b.extra(id).prev = id - 1
	}
	b.extra(src).prev = dest - 1
	b.extra(dest - 1).next = src

	// splice the new block in front of the head
	b.extra(src).prev = b.extra(b.extrasHead).prev
	b.extra(dest - 1).next = b.extrasHead
	b.extra(b.extra(b.extrasHead).prev).next = src
	b.extra(b.extrasHead).prev = dest - 1
}

func (b *builder) fixAllBlocks() {
	begin := uint32(0)
	if n := b.numBlocks(); n > numExtraBlocks {
		begin = n - numExtraBlocks
	}
	for blockID := begin; blockID < b.numBlocks(); blockID++ {
		b.fixBlock(blockID)
	}
}

// fixBlock reserves every free unit of a block and labels it so that
// no lookup can be mistaken for a real edge.
func (b *builder) fixBlock(blockID uint32) {
	begin := blockID * blockSize
	end := begin + blockSize

	unusedOffset := uint32(0)
	for offset := begin; offset < end; offset++ {
		if !b.extra(offset).isUsed {
			unusedOffset = offset
			break
		}
	}
	for id := begin; id < end; id++ {
		if !b.extra(id).isFixed {
			b.reserveID(id)
			b.setLabel(id, byte(id^unusedOffset))
		}
	}
}
