package main

import "io"

// Unit selects what the chars column of a Count measures. Byte and
// character counting share one accumulator and differ only in unit.
type Unit int

const (
	// UnitBytes counts raw bytes, so a multi-byte rune contributes every
	// one of its encoded bytes.
	UnitBytes Unit = iota
	// UnitRunes counts Unicode code points.
	UnitRunes
)

// Modes is the set of metrics a run computes, fixed once at startup and
// shared by every input and by the total.
type Modes struct {
	Lines  bool
	Words  bool
	Chars  bool
	Tokens bool

	// CharUnit only matters while Chars is active.
	CharUnit Unit
}

// Metric is a presence-tagged accumulator. An inactive metric is absent,
// not zero: it is never computed and never printed, and it stays absent
// through any number of Adds.
type Metric struct {
	Active bool
	Value  int64
}

// Add combines two metrics. The result is present only when both operands
// are, so mixing counts from different metric sets cannot invent values.
func (m Metric) Add(other Metric) Metric {
	if !m.Active || !other.Active {
		return Metric{}
	}
	return Metric{Active: true, Value: m.Value + other.Value}
}

// Count holds the measured values for one input, or the running total
// across inputs. newCount builds the identity element for Add under a
// given Modes.
type Count struct {
	Lines  Metric
	Words  Metric
	Chars  Metric
	Tokens Metric
}

// Add combines two counts metric-wise. Both counts must have been produced
// under the same active metric set.
func (c Count) Add(other Count) Count {
	return Count{
		Lines:  c.Lines.Add(other.Lines),
		Words:  c.Words.Add(other.Words),
		Chars:  c.Chars.Add(other.Chars),
		Tokens: c.Tokens.Add(other.Tokens),
	}
}

// Input is a named, openable byte stream. Name is empty for standard
// input, which is why stdin rows carry no name column. Open either yields
// a readable stream or fails; a failed Open excludes the input from the
// run entirely, including the total.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Summary holds run bookkeeping: how many inputs a run attempted and how
// many failed to open or read. A non-zero Failed becomes exit status 1.
type Summary struct {
	Inputs int
	Failed int
}
