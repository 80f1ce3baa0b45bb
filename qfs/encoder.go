package qfs

// Compress attempts to QFS-compress src. It returns ok == false when compression is refused:
// src is shorter than 14 bytes or at least 16 MiB, or the resulting frame would not be strictly
// smaller than src. Callers that get ok == false must store src uncompressed.
func Compress(src []byte) (frame []byte, ok bool) {
	if len(src) < minSourceSize || len(src) >= maxSourceSize {
		return nil, false
	}

	opcodes := newEncoder(src).run()

	total := FrameHeaderSize + len(opcodes)
	if total >= len(src) {
		return nil, false
	}

	hdr := FrameHeader{
		CompressedLength:   uint32(total), //nolint:gosec
		DecompressedLength: uint32(len(src)),
	}

	out := hdr.Bytes()
	out = append(out, opcodes...)

	return out, true
}

// encoder holds the chained-hash tables used by the longest-match search for a single Compress
// call. head[h] is the most recent position whose 3-byte prefix hashed to h (or -1); prev[p]
// chains backward to the previous position sharing that same hash.
type encoder struct {
	src  []byte
	head [hashSlots]int32
	prev []int32
}

func newEncoder(src []byte) *encoder {
	e := &encoder{src: src, prev: make([]int32, len(src))}
	for i := range e.head {
		e.head[i] = -1
	}

	return e
}

func hash3(b0, b1, b2 byte) uint32 {
	v := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16

	return (v * 2654435761) >> 16 & (hashSlots - 1)
}

func (e *encoder) insert(pos int) {
	if pos+3 > len(e.src) {
		return
	}

	h := hash3(e.src[pos], e.src[pos+1], e.src[pos+2])
	e.prev[pos] = e.head[h]
	e.head[h] = int32(pos) //nolint:gosec
}

// findMatch walks the hash chain at pos backward, looking for the longest prior run that
// matches src starting at pos. It returns (0, 0) if nothing useful is found.
func (e *encoder) findMatch(pos int) (length, offset int) {
	if pos+minMatchLen > len(e.src) {
		return 0, 0
	}

	maxLen := len(e.src) - pos
	if maxLen > maxMatch {
		maxLen = maxMatch
	}

	h := hash3(e.src[pos], e.src[pos+1], e.src[pos+2])
	candidate := e.head[h]
	chain := maxChain
	bestLen, bestOff := 0, 0

	for candidate >= 0 && chain > 0 {
		cpos := int(candidate)
		if pos-cpos > windowSize {
			break
		}

		if bestLen > 0 && e.src[cpos+bestLen-1] != e.src[pos+bestLen-1] {
			candidate = e.prev[cpos]
			chain--
			continue
		}

		l := 0
		for l < maxLen && e.src[cpos+l] == e.src[pos+l] {
			l++
		}

		if l > bestLen {
			bestLen, bestOff = l, pos-cpos
			if bestLen >= niceLength {
				break
			}
			if bestLen > goodLength {
				chain = maxChain/4 + 1
			}
		}

		candidate = e.prev[cpos]
		chain--
	}

	return bestLen, bestOff
}

func viableMatch(length, offset int) bool {
	if length < minMatchLen || offset < 1 || offset > windowSize {
		return false
	}
	if length <= 3 && offset > 1024 {
		return false
	}
	if length <= 4 && offset > 16384 {
		return false
	}

	return true
}

func (e *encoder) run() []byte {
	src := e.src
	var out []byte
	pos, litStart := 0, 0

	for pos < len(src) {
		length, offset := e.findMatch(pos)
		matched := length >= minMatchLen && viableMatch(length, offset)

		e.insert(pos)

		if matched && length < maxLazy && pos+1+minMatchLen <= len(src) {
			nextLen, nextOff := e.findMatch(pos + 1)
			if nextLen > length && viableMatch(nextLen, nextOff) {
				pos++
				continue
			}
		}

		if !matched {
			pos++
			continue
		}

		out = emitLiteralsAndMatch(out, src, litStart, pos, length, offset)
		for i := 1; i < length; i++ {
			e.insert(pos + i)
		}
		pos += length
		litStart = pos
	}

	return emitTrailing(out, src, litStart, len(src))
}

// flushLiteralChunks emits as many 4-byte-aligned pure-literal opcodes (family 0xE0..0xFB) as
// needed to bring count down to 3 or fewer, which can then ride along with a following match or
// terminator opcode.
func flushLiteralChunks(out, src []byte, start, count int) ([]byte, int, int) {
	for count > 3 {
		chunk := count
		if chunk > 112 {
			chunk = 112
		}
		chunk -= chunk % 4

		out = append(out, byte(0xDF+chunk/4))
		out = append(out, src[start:start+chunk]...)
		start += chunk
		count -= chunk
	}

	return out, start, count
}

func emitLiteralsAndMatch(out, src []byte, litStart, matchPos, length, offset int) []byte {
	out, start, lit := flushLiteralChunks(out, src, litStart, matchPos-litStart)
	out = emitMatchOpcode(out, offset, length, lit)
	out = append(out, src[start:start+lit]...)

	return out
}

func emitTrailing(out, src []byte, litStart, end int) []byte {
	out, start, lit := flushLiteralChunks(out, src, litStart, end-litStart)
	out = append(out, byte(0xFC+lit))
	out = append(out, src[start:start+lit]...)

	return out
}

func emitMatchOpcode(out []byte, offset, length, lit int) []byte {
	off0 := offset - 1

	switch {
	case length <= 10 && offset <= 1024:
		b0 := byte((off0>>8)&0x03)<<5 | byte(length-3)<<2 | byte(lit)
		b1 := byte(off0 & 0xFF)

		return append(out, b0, b1)

	case length <= 67 && offset <= 16384:
		b0 := byte(0x80 | (length - 4))
		topOff6 := byte((off0 >> 8) & 0x3F)
		b1 := byte(lit)<<6 | topOff6
		b2 := byte(off0 & 0xFF)

		return append(out, b0, b1, b2)

	default: // length <= 1028 && offset <= 131072
		copy0 := length - 5
		topOffsetBit := byte((off0 >> 16) & 0x01)
		topCopy2 := byte((copy0 >> 8) & 0x03)
		b0 := byte(0xC0) | topOffsetBit<<4 | topCopy2<<2 | byte(lit)
		b1 := byte((off0 >> 8) & 0xFF)
		b2 := byte(off0 & 0xFF)
		b3 := byte(copy0 & 0xFF)

		return append(out, b0, b1, b2, b3)
	}
}
