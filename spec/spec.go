// Package spec models the declarative benchmark/validation documents
// shared with the reference implementation. Both sides consume identical
// spec batches, so decoding here must not reorder or reinterpret fields.
package spec

// Fill names a fill strategy for an array operand.
type Fill string

const (
	FillZeros  Fill = "zeros"
	FillOnes   Fill = "ones"
	FillRandom Fill = "random"
	FillArange Fill = "arange"
)

// EntryKind classifies a setup entry. The classification happens once,
// at parse time; downstream code switches on Kind instead of re-deriving
// it from the key name.
type EntryKind int

const (
	// EntryArray materializes as an n-d array operand.
	EntryArray EntryKind = iota
	// EntryScalar is a reserved parameter key: its shape degenerates to
	// a scalar (one element) or an integer tuple.
	EntryScalar
	// EntryIndexList is the indices key: its shape field is literal
	// index data, passed through verbatim.
	EntryIndexList
)

// reservedKeys is the single source of truth for scalar-parameter keys.
var reservedKeys = map[string]bool{
	"n":            true,
	"axis":         true,
	"new_shape":    true,
	"shape":        true,
	"fill_value":   true,
	"target_shape": true,
}

const indicesKey = "indices"

// classify maps a setup key to its entry kind.
func classify(key string) EntryKind {
	switch {
	case key == indicesKey:
		return EntryIndexList
	case reservedKeys[key]:
		return EntryScalar
	default:
		return EntryArray
	}
}

// SetupEntry is one operand or parameter description.
type SetupEntry struct {
	Key   string
	Kind  EntryKind
	Shape []int
	DType string
	Fill  Fill
	Value *float64
}

// Setup is an ordered sequence of setup entries. Order carries no
// semantics (operands are looked up by key) but is preserved so repeated
// runs materialize identically.
type Setup struct {
	entries []SetupEntry
}

// NewSetup builds a Setup from entries in order, classifying each key
// and defaulting the fill. Callers outside the decoder (embedding
// libraries, tests) construct setups through this.
func NewSetup(entries ...SetupEntry) Setup {
	for i := range entries {
		entries[i].Kind = classify(entries[i].Key)

		if entries[i].Fill == "" {
			entries[i].Fill = FillZeros
		}
	}

	return Setup{entries: entries}
}

// Entries returns the entries in document order.
func (s Setup) Entries() []SetupEntry { return s.entries }

// Len returns the number of entries.
func (s Setup) Len() int { return len(s.entries) }

// Benchmark is one declarative unit of work. In validation mode the
// Warmup and Iterations fields are ignored.
type Benchmark struct {
	Name       string
	Operation  string
	Setup      Setup
	Warmup     int
	Iterations int
}

// Config carries batch-level calibration settings. A zero field means
// "use the default"; the Resolve methods apply defaults so a Config can
// be passed around as a plain value.
type Config struct {
	MinSampleTimeMs float64 `json:"minSampleTimeMs" yaml:"minSampleTimeMs"`
	TargetSamples   int     `json:"targetSamples" yaml:"targetSamples"`
}

// Defaults for calibrated sampling.
const (
	DefaultMinSampleTimeMs = 100
	DefaultTargetSamples   = 5
)

// ResolveMinSampleTimeMs returns the configured minimum sample time.
func (c Config) ResolveMinSampleTimeMs() float64 {
	if c.MinSampleTimeMs > 0 {
		return c.MinSampleTimeMs
	}

	return DefaultMinSampleTimeMs
}

// ResolveTargetSamples returns the configured sample count.
func (c Config) ResolveTargetSamples() int {
	if c.TargetSamples > 0 {
		return c.TargetSamples
	}

	return DefaultTargetSamples
}

// Batch is a decoded input document: the specs plus effective config.
type Batch struct {
	Specs  []Benchmark
	Config Config
}
