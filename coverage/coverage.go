// Package coverage diffs two API-surface audit snapshots. The reference
// side lists its functions grouped by category; the target side lists
// whatever it implements. The differ is pure set arithmetic over names:
// it never inspects signatures, only presence.
package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Snapshot is one audit document. A reference snapshot populates
// Categorized; a target snapshot populates AllFunctions. Both sides
// carry NDArrayMethods. Member values are opaque audit metadata; only
// the keys matter here.
type Snapshot struct {
	Categorized    map[string][]string        `json:"categorized"`
	AllFunctions   map[string]json.RawMessage `json:"all_functions"`
	NDArrayMethods map[string]json.RawMessage `json:"ndarray_methods"`
}

// Load reads an audit snapshot from a JSON file.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", path, err)
	}

	return s, nil
}

// Decode parses an audit snapshot document.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	return s, nil
}

// CategoryStat is the per-category diff result.
type CategoryStat struct {
	Name        string
	Implemented int
	Total       int
	Missing     []string
}

// Percent returns the category's completion percentage.
func (c CategoryStat) Percent() float64 {
	if c.Total == 0 {
		return 0
	}

	return 100 * float64(c.Implemented) / float64(c.Total)
}

// Analysis is the full diff between a reference and a target snapshot.
// Functions and methods are compared as independent namespaces: a name
// implemented as a method still counts toward a function category, since
// the surface is reachable either way.
type Analysis struct {
	Categories []CategoryStat

	RefFunctions    int
	TargetFunctions int
	FunctionsShared int

	RefMethods    int
	TargetMethods int
	MethodsShared int

	MissingFunctions []string
	ExtraFunctions   []string
	MissingMethods   []string
	ExtraMethods     []string

	// Union sizes, for the headline number.
	RefTotal    int
	TargetTotal int
}

// FunctionPercent is top-level function coverage.
func (a Analysis) FunctionPercent() float64 {
	if a.RefFunctions == 0 {
		return 0
	}

	return 100 * float64(a.FunctionsShared) / float64(a.RefFunctions)
}

// MethodPercent is method coverage.
func (a Analysis) MethodPercent() float64 {
	if a.RefMethods == 0 {
		return 0
	}

	return 100 * float64(a.MethodsShared) / float64(a.RefMethods)
}

// OverallPercent compares the unions of functions and methods on each
// side.
func (a Analysis) OverallPercent() float64 {
	if a.RefTotal == 0 {
		return 0
	}

	return 100 * float64(a.TargetTotal) / float64(a.RefTotal)
}

// Diff computes set intersections and differences between the reference
// and target snapshots, per category and overall.
func Diff(ref, target Snapshot) Analysis {
	refFuncs := make(map[string]bool)
	for _, funcs := range ref.Categorized {
		for _, fn := range funcs {
			refFuncs[fn] = true
		}
	}

	targetFuncs := keySet(target.AllFunctions)
	refMethods := keySet(ref.NDArrayMethods)
	targetMethods := keySet(target.NDArrayMethods)

	// Category completion accepts either form on the target side.
	targetAll := union(targetFuncs, targetMethods)

	a := Analysis{
		RefFunctions:    len(refFuncs),
		TargetFunctions: len(targetFuncs),
		FunctionsShared: len(intersect(refFuncs, targetFuncs)),

		RefMethods:    len(refMethods),
		TargetMethods: len(targetMethods),
		MethodsShared: len(intersect(refMethods, targetMethods)),

		MissingFunctions: sorted(subtract(refFuncs, targetFuncs)),
		ExtraFunctions:   sorted(subtract(targetFuncs, refFuncs)),
		MissingMethods:   sorted(subtract(refMethods, targetMethods)),
		ExtraMethods:     sorted(subtract(targetMethods, refMethods)),

		RefTotal:    len(union(refFuncs, refMethods)),
		TargetTotal: len(union(targetFuncs, targetMethods)),
	}

	for name, funcs := range ref.Categorized {
		cat := make(map[string]bool, len(funcs))
		for _, fn := range funcs {
			cat[fn] = true
		}

		a.Categories = append(a.Categories, CategoryStat{
			Name:        name,
			Implemented: len(intersect(cat, targetAll)),
			Total:       len(cat),
			Missing:     sorted(subtract(cat, targetAll)),
		})
	}

	// Complete categories first, ties broken by name.
	sort.Slice(a.Categories, func(i, j int) bool {
		pi, pj := a.Categories[i].Percent(), a.Categories[j].Percent()
		if pi != pj {
			return pi > pj
		}

		return a.Categories[i].Name < a.Categories[j].Name
	})

	return a
}

// WriteTable renders the per-category breakdown as a markdown table
// with an overall footer line.
func WriteTable(w io.Writer, a Analysis) error {
	if _, err := fmt.Fprintln(w, "| Category | Complete | Total | Status |"); err != nil {
		return err
	}

	fmt.Fprintln(w, "|----------|----------|-------|--------|")

	for _, c := range a.Categories {
		fmt.Fprintf(w, "| **%s** | %d/%d | %.0f%% | %s |\n",
			c.Name, c.Implemented, c.Total, c.Percent(), statusMarker(c.Percent()))
	}

	_, err := fmt.Fprintf(w, "\n**Overall: %d/%d functions (%.1f%% complete)**\n",
		a.TargetTotal, a.RefTotal, a.OverallPercent())

	return err
}

// WriteGaps renders the verbose listing of missing and extra names.
func WriteGaps(w io.Writer, a Analysis) error {
	fmt.Fprintf(w, "TOP-LEVEL FUNCTIONS: %d/%d (%.1f%%)\n",
		a.FunctionsShared, a.RefFunctions, a.FunctionPercent())
	writeNames(w, "missing", a.MissingFunctions)
	writeNames(w, "extra", a.ExtraFunctions)

	if _, err := fmt.Fprintf(w, "\nNDARRAY METHODS: %d/%d (%.1f%%)\n",
		a.MethodsShared, a.RefMethods, a.MethodPercent()); err != nil {
		return err
	}

	writeNames(w, "missing", a.MissingMethods)
	writeNames(w, "extra", a.ExtraMethods)

	return nil
}

func writeNames(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		return
	}

	fmt.Fprintf(w, "  %s (%d):\n", label, len(names))

	for i, n := range names {
		fmt.Fprintf(w, "    %3d. %s\n", i+1, n)
	}
}

func statusMarker(pct float64) string {
	switch {
	case pct == 100:
		return "done"
	case pct >= 50:
		return "partial"
	default:
		return "gap"
	}
}

func keySet[V any](m map[string]V) map[string]bool {
	s := make(map[string]bool, len(m))
	for k := range m {
		s[k] = true
	}

	return s
}

func union(a, b map[string]bool) map[string]bool {
	s := make(map[string]bool, len(a)+len(b))
	for k := range a {
		s[k] = true
	}

	for k := range b {
		s[k] = true
	}

	return s
}

func intersect(a, b map[string]bool) map[string]bool {
	s := make(map[string]bool)

	for k := range a {
		if b[k] {
			s[k] = true
		}
	}

	return s
}

func subtract(a, b map[string]bool) map[string]bool {
	s := make(map[string]bool)

	for k := range a {
		if !b[k] {
			s[k] = true
		}
	}

	return s
}

func sorted(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
