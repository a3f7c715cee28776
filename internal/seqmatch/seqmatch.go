// Package seqmatch compares two sequences by greedy longest matching blocks.
//
// The matcher finds the longest contiguous block common to both sequences,
// then recurses into the pieces on either side of it. The resulting blocks
// drive both the similarity ratio and the edit opcodes.
package seqmatch

import "sort"

// autoJunkMin is the length of b at which popular elements are ignored.
const autoJunkMin = 200

// Match is a common block: a[A:A+Size] == b[B:B+Size].
type Match struct {
	A    int
	B    int
	Size int
}

// Tag names the kind of an Opcode.
type Tag byte

// Opcode tags.
const (
	Equal   Tag = 'e'
	Replace Tag = 'r'
	Delete  Tag = 'd'
	Insert  Tag = 'i'
)

// Opcode describes how to turn a[I1:I2] into b[J1:J2].
type Opcode struct {
	Tag Tag
	I1  int
	I2  int
	J1  int
	J2  int
}

// Option configures a Matcher.
type Option[T comparable] func(*Matcher[T])

// WithJunk marks elements of b that may not start a match.
func WithJunk[T comparable](isJunk func(T) bool) Option[T] {
	return func(m *Matcher[T]) {
		m.isJunk = isJunk
	}
}

// WithoutAutoJunk disables the popular-element heuristic for long sequences.
func WithoutAutoJunk[T comparable]() Option[T] {
	return func(m *Matcher[T]) {
		m.autoJunk = false
	}
}

// Matcher compares sequence a against sequence b. It caches the index of b,
// so comparing many a-sequences against one b is cheap. A Matcher is not
// safe for concurrent use.
type Matcher[T comparable] struct {
	a        []T
	b        []T
	isJunk   func(T) bool
	autoJunk bool

	b2j        map[T][]int
	bjunk      map[T]struct{}
	fullBCount map[T]int
	blocks     []Match
	opcodes    []Opcode
}

// New returns a Matcher for a and b.
func New[T comparable](a, b []T, opts ...Option[T]) *Matcher[T] {
	m := &Matcher[T]{autoJunk: true}
	for _, opt := range opts {
		opt(m)
	}
	m.SetSeqs(a, b)
	return m
}

// SetSeqs replaces both sequences.
func (m *Matcher[T]) SetSeqs(a, b []T) {
	m.SetSeq1(a)
	m.SetSeq2(b)
}

// SetSeq1 replaces a and keeps the index of b.
func (m *Matcher[T]) SetSeq1(a []T) {
	m.a = a
	m.blocks = nil
	m.opcodes = nil
}

// SetSeq2 replaces b and rebuilds its index.
func (m *Matcher[T]) SetSeq2(b []T) {
	m.b = b
	m.blocks = nil
	m.opcodes = nil
	m.fullBCount = nil
	m.chainB()
}

func (m *Matcher[T]) chainB() {
	b2j := make(map[T][]int)
	for i, elt := range m.b {
		b2j[elt] = append(b2j[elt], i)
	}

	m.bjunk = map[T]struct{}{}
	if m.isJunk != nil {
		for elt := range b2j {
			if m.isJunk(elt) {
				m.bjunk[elt] = struct{}{}
			}
		}
		for elt := range m.bjunk {
			delete(b2j, elt)
		}
	}

	n := len(m.b)
	if m.autoJunk && n >= autoJunkMin {
		ntest := n/100 + 1
		for elt, idxs := range b2j {
			if len(idxs) > ntest {
				delete(b2j, elt)
			}
		}
	}
	m.b2j = b2j
}

func (m *Matcher[T]) isBJunk(elt T) bool {
	_, ok := m.bjunk[elt]
	return ok
}

// FindLongestMatch returns the longest block in a[alo:ahi] and b[blo:bhi].
// Ties go to the block starting earliest in a, then earliest in b. A block
// never starts with junk, but is extended through equal junk on either side.
// Size is zero when nothing matches.
func (m *Matcher[T]) FindLongestMatch(alo, ahi, blo, bhi int) Match {
	a, b := m.a, m.b
	besti, bestj, bestsize := alo, blo, 0

	// j2len[j] is the length of the match ending at a[i-1], b[j].
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	for besti > alo && bestj > blo && !m.isBJunk(b[bestj-1]) && a[besti-1] == b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && !m.isBJunk(b[bestj+bestsize]) && a[besti+bestsize] == b[bestj+bestsize] {
		bestsize++
	}

	for besti > alo && bestj > blo && m.isBJunk(b[bestj-1]) && a[besti-1] == b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && m.isBJunk(b[bestj+bestsize]) && a[besti+bestsize] == b[bestj+bestsize] {
		bestsize++
	}

	return Match{A: besti, B: bestj, Size: bestsize}
}

// MatchingBlocks returns the non-overlapping common blocks in increasing
// order, adjacent blocks merged. The last element is always the sentinel
// {len(a), len(b), 0}.
func (m *Matcher[T]) MatchingBlocks() []Match {
	if m.blocks != nil {
		return m.blocks
	}
	la, lb := len(m.a), len(m.b)

	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, la, 0, lb}}
	var found []Match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x := m.FindLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		found = append(found, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].A != found[j].A {
			return found[i].A < found[j].A
		}
		if found[i].B != found[j].B {
			return found[i].B < found[j].B
		}
		return found[i].Size < found[j].Size
	})

	blocks := make([]Match, 0, len(found)+1)
	var cur Match
	for _, next := range found {
		if cur.A+cur.Size == next.A && cur.B+cur.Size == next.B {
			cur.Size += next.Size
			continue
		}
		if cur.Size > 0 {
			blocks = append(blocks, cur)
		}
		cur = next
	}
	if cur.Size > 0 {
		blocks = append(blocks, cur)
	}
	blocks = append(blocks, Match{A: la, B: lb, Size: 0})
	m.blocks = blocks
	return blocks
}

// Opcodes returns the edits that turn a into b, covering both sequences
// end to end.
func (m *Matcher[T]) Opcodes() []Opcode {
	if m.opcodes != nil {
		return m.opcodes
	}
	i, j := 0, 0
	opcodes := []Opcode{}
	for _, blk := range m.MatchingBlocks() {
		var tag Tag
		switch {
		case i < blk.A && j < blk.B:
			tag = Replace
		case i < blk.A:
			tag = Delete
		case j < blk.B:
			tag = Insert
		}
		if tag != 0 {
			opcodes = append(opcodes, Opcode{Tag: tag, I1: i, I2: blk.A, J1: j, J2: blk.B})
		}
		i, j = blk.A+blk.Size, blk.B+blk.Size
		if blk.Size > 0 {
			opcodes = append(opcodes, Opcode{Tag: Equal, I1: blk.A, I2: i, J1: blk.B, J2: j})
		}
	}
	m.opcodes = opcodes
	return opcodes
}

// Ratio returns 2*M/T, where M is the number of matched elements and T the
// combined length. Two empty sequences have ratio 1.
func (m *Matcher[T]) Ratio() float64 {
	matches := 0
	for _, blk := range m.MatchingBlocks() {
		matches += blk.Size
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// QuickRatio returns an upper bound on Ratio from element counts alone.
func (m *Matcher[T]) QuickRatio() float64 {
	if m.fullBCount == nil {
		m.fullBCount = make(map[T]int, len(m.b))
		for _, elt := range m.b {
			m.fullBCount[elt]++
		}
	}
	avail := map[T]int{}
	matches := 0
	for _, elt := range m.a {
		numb, ok := avail[elt]
		if !ok {
			numb = m.fullBCount[elt]
		}
		avail[elt] = numb - 1
		if numb > 0 {
			matches++
		}
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// RealQuickRatio returns an upper bound on Ratio from lengths alone.
func (m *Matcher[T]) RealQuickRatio() float64 {
	la, lb := len(m.a), len(m.b)
	return calculateRatio(min(la, lb), la+lb)
}

func calculateRatio(matches, length int) float64 {
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(length)
}
