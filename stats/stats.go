// Package stats measures how compactly preference stores encode their data
// and fits size-estimation models over those measurements.
//
// Analyze turns one store's Sizes into a Report (bytes per plane, bits per
// preference, ratio against raw integers). Compare builds one store per
// codec pair over the same data and reports them side by side. FitModels
// fits bits-per-preference curves against mean row length, for projecting
// the footprint of data sets that have not been built yet.
package stats

import (
	"fmt"

	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/pref"
)

// Report describes the encoded footprint of one store.
type Report struct {
	// Sizes holds the encoded bytes per orientation and plane.
	Sizes pref.Sizes

	// Preferences is the number of stored preferences.
	Preferences int

	// TotalBytes is the encoded size across both orientations and planes.
	TotalBytes int

	// RawBytes is the uncompressed baseline: four bytes per stored
	// integer. Every preference appears in both orientations, and each
	// appearance is an index plus, when the store carries values, a value.
	RawBytes int

	// BitsPerPref is TotalBytes expressed in bits per preference.
	BitsPerPref float64

	// Ratio is TotalBytes / RawBytes. Below 1 means smaller than raw.
	Ratio float64
}

// Analyze computes the Report for a store footprint. prefs is the store's
// NumPreferences. Zero preferences yield a zero report.
func Analyze(sizes pref.Sizes, prefs int) Report {
	r := Report{
		Sizes:       sizes,
		Preferences: prefs,
		TotalBytes:  sizes.Total(),
	}
	if prefs <= 0 {
		return r
	}

	integers := 2 * prefs
	if sizes.UserValueBytes > 0 || sizes.ItemValueBytes > 0 {
		integers *= 2
	}
	r.RawBytes = 4 * integers
	r.BitsPerPref = float64(r.TotalBytes) * 8 / float64(prefs)
	r.Ratio = float64(r.TotalBytes) / float64(r.RawBytes)

	return r
}

// String renders the headline numbers: total bytes, bits per preference,
// and the ratio against raw integers.
func (r Report) String() string {
	return fmt.Sprintf("%d B, %.2f bits/pref, %.3fx raw", r.TotalBytes, r.BitsPerPref, r.Ratio)
}

// CodecPair names an index/value codec combination for Compare.
type CodecPair struct {
	Name  string
	Index codec.Codec
	Value codec.Codec
}

// Comparison is one Compare row: the pair's name and its measured report.
type Comparison struct {
	Name   string
	Report Report
}

// Compare builds one store over d per codec pair and reports each encoded
// footprint, in pair order. Building stops at the first pair that fails.
func Compare(d pref.Data, pairs []CodecPair) ([]Comparison, error) {
	out := make([]Comparison, 0, len(pairs))
	for _, pair := range pairs {
		s, err := pref.NewStore(d,
			pref.WithIndexCodec(pair.Index),
			pref.WithValueCodec(pair.Value),
		)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", pair.Name, err)
		}

		out = append(out, Comparison{
			Name:   pair.Name,
			Report: Analyze(s.Sizes(), s.NumPreferences()),
		})
	}

	return out, nil
}
