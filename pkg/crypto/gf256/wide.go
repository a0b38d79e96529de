package gf256

import "encoding/binary"

// high bit of every byte lane
const laneHigh = 0x8080808080808080

// Wide packs eight field elements into each uint64 and operates on all of
// them at once. Trailing bytes that do not fill a word go through Reference.
type Wide struct{}

func (Wide) Name() string { return "wide" }

// mulWord multiplies each of the eight lanes of x by c.
func mulWord(x uint64, c byte) uint64 {
	var r uint64
	for i := 7; i >= 0; i-- {
		carry := (r & laneHigh) >> 7
		r = ((r &^ laneHigh) << 1) ^ (carry * uint64(reduce))
		r ^= x & -uint64(c>>uint(i)&1)
	}
	return r
}

func (Wide) Add(dst, src []byte) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+8 <= n; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], d^s)
	}
	Reference{}.Add(dst[i:], src[i:])
}

func (Wide) Madd(dst, src []byte, c byte) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+8 <= n; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], d^mulWord(s, c))
	}
	Reference{}.Madd(dst[i:], src[i:], c)
}

func (Wide) MulScalar(dst []byte, c byte) {
	n := len(dst)
	i := 0
	for ; i+8 <= n; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		binary.LittleEndian.PutUint64(dst[i:], mulWord(d, c))
	}
	Reference{}.MulScalar(dst[i:], c)
}

func (Wide) PredicatedAdd(dst []byte, pred byte, src []byte) {
	n := len(dst)
	src = src[:n]
	mask := -uint64(pred & 1)
	i := 0
	for ; i+8 <= n; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], d^(s&mask))
	}
	Reference{}.PredicatedAdd(dst[i:], pred, src[i:])
}
