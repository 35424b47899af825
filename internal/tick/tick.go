package tick

import (
	"encoding/binary"
	"fmt"
	"math"
)

// priceEpsilon is the tolerance used when comparing two prices for
// equality. Floating point prices accumulated through different code
// paths (e.g. a round trip through Serialize/Deserialize) should still
// compare equal.
const priceEpsilon = 1e-9

// Tick is a single, immutable trade record. It is a plain value type with
// a well-defined byte layout, suitable for mem-copy serialization by
// external collaborators.
type Tick struct {
	Timestamp  uint64
	Price      float64
	Volume     uint32
	SymbolID   uint32
	ExchangeID uint32
	Condition  Condition
}

// New builds a Tick from its required fields, defaulting SymbolID,
// ExchangeID and Condition to their zero values.
func New(timestamp uint64, price float64, volume uint32) Tick {
	return Tick{Timestamp: timestamp, Price: price, Volume: volume}
}

// Equal reports whether two ticks are field-wise equal, using an epsilon
// tolerance for the floating-point price field.
func (t Tick) Equal(other Tick) bool {
	if t.Timestamp != other.Timestamp ||
		t.Volume != other.Volume ||
		t.SymbolID != other.SymbolID ||
		t.ExchangeID != other.ExchangeID ||
		t.Condition != other.Condition {
		return false
	}
	return math.Abs(t.Price-other.Price) <= priceEpsilon
}

func (t Tick) String() string {
	return fmt.Sprintf("Tick{ts:%d sym:%d exch:%d price:%.4f vol:%d cond:%s}",
		t.Timestamp, t.SymbolID, t.ExchangeID, t.Price, t.Volume, t.Condition)
}

// Filter is a predicate over ticks, used by range and aggregate queries
// to select a subset of records. A nil Filter accepts everything.
type Filter func(Tick) bool

// Accept reports whether f accepts t, treating a nil Filter as
// always-true.
func (f Filter) Accept(t Tick) bool {
	if f == nil {
		return true
	}
	return f(t)
}

// SerializedSize is the fixed wire size of a Tick:
// timestamp(8) + symbol_id(4) + exchange_id(4) + price(8) + volume(4) + condition(1).
const SerializedSize = 8 + 4 + 4 + 8 + 4 + 1

// Serialize writes t into buf in little-endian byte order, whatever the
// host's byte order. buf must be at least SerializedSize bytes. This is an
// in-process contract only: the layout carries no versioning.
func (t Tick) Serialize(buf []byte) {
	_ = buf[SerializedSize-1] // bounds check hint
	binary.LittleEndian.PutUint64(buf[0:8], t.Timestamp)
	binary.LittleEndian.PutUint32(buf[8:12], t.SymbolID)
	binary.LittleEndian.PutUint32(buf[12:16], t.ExchangeID)
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(t.Price))
	binary.LittleEndian.PutUint32(buf[24:28], t.Volume)
	buf[28] = byte(t.Condition)
}

// Deserialize reconstructs a Tick from a buffer previously produced by
// Serialize.
func Deserialize(buf []byte) Tick {
	_ = buf[SerializedSize-1]
	return Tick{
		Timestamp:  binary.LittleEndian.Uint64(buf[0:8]),
		SymbolID:   binary.LittleEndian.Uint32(buf[8:12]),
		ExchangeID: binary.LittleEndian.Uint32(buf[12:16]),
		Price:      math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24])),
		Volume:     binary.LittleEndian.Uint32(buf[24:28]),
		Condition:  Condition(buf[28]),
	}
}
