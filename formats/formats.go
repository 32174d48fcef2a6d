// Package formats reads and writes the tab-separated text files preference
// data sets ship in: rating files with one "user item rating" triple per
// line, and index files with one identifier per line.
//
//	u42	i7	4
//	u42	i19	3.5
//	u57	i7	1
//
// Columns after the third (timestamps, session tags) are ignored. Parse
// failures report the offending line number and wrap errs.ErrInvalidFormat.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/index"
	"github.com/arloliu/prefpack/pref"
)

// ReadRatings parses rating triples from r, resolving user and item
// identifiers through the given indexes. Unknown identifiers are added in
// encounter order, so passing fresh indexes yields surrogate spaces exactly
// covering the file, and passing populated ones aligns the file with an
// existing space.
//
// The returned tuples preserve file order and are not deduplicated; the
// store constructors reject duplicate (user, item) pairs.
func ReadRatings(r io.Reader, users, items *index.Index[string]) ([]pref.Tuple, error) {
	if users == nil || items == nil {
		return nil, fmt.Errorf("formats: rating reader needs user and item indexes")
	}

	var tuples []pref.Tuple

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.SplitN(sc.Text(), "\t", 4)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d: want user, item and rating columns, got %d",
				errs.ErrInvalidFormat, line, len(fields))
		}
		if fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("%w: line %d: empty identifier", errs.ErrInvalidFormat, line)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: rating %q: %v", errs.ErrInvalidFormat, line, fields[2], err)
		}

		tuples = append(tuples, pref.Tuple{
			UIdx: users.Add(fields[0]),
			IIdx: items.Add(fields[1]),
			V:    v,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ratings: %w", err)
	}

	return tuples, nil
}

// ReadIndex parses one identifier per line into a fresh index, assigning
// surrogates in file order. Blank lines wrap errs.ErrInvalidFormat and
// repeated identifiers wrap errs.ErrDuplicateID, both with the line number.
func ReadIndex(r io.Reader) (*index.Index[string], error) {
	idx := index.New[string]()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		id := sc.Text()
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty identifier", errs.ErrInvalidFormat, line)
		}
		if idx.Contains(id) {
			return nil, fmt.Errorf("%w: line %d: %q", errs.ErrDuplicateID, line, id)
		}
		idx.Add(id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	return idx, nil
}

// WriteRatings writes d as rating triples, users in ascending surrogate
// order and each row in ascending item order, resolving identifiers through
// the given indexes. Reading the output back with ReadRatings and the same
// indexes reproduces d's preferences.
func WriteRatings(w io.Writer, d pref.Data, users, items *index.Index[string]) error {
	if d == nil {
		return fmt.Errorf("%w: rating writer", errs.ErrNilData)
	}
	if users == nil || items == nil {
		return fmt.Errorf("formats: rating writer needs user and item indexes")
	}

	bw := bufio.NewWriter(w)
	for uidx := range d.UsersWithPreferences() {
		uid, ok := users.ID(uidx)
		if !ok {
			return fmt.Errorf("%w: user %d has no identifier", errs.ErrIndexOutOfRange, uidx)
		}
		for p := range d.UserPreferences(uidx) {
			iid, ok := items.ID(p.Idx)
			if !ok {
				return fmt.Errorf("%w: item %d has no identifier", errs.ErrIndexOutOfRange, p.Idx)
			}
			rating := strconv.FormatFloat(p.V, 'g', -1, 64)
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", uid, iid, rating); err != nil {
				return fmt.Errorf("writing ratings: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ratings: %w", err)
	}

	return nil
}

// WriteIndex writes ids one per line in ascending surrogate order, the
// inverse of ReadIndex.
func WriteIndex(w io.Writer, ids *index.Index[string]) error {
	if ids == nil {
		return fmt.Errorf("formats: index writer needs an index")
	}

	bw := bufio.NewWriter(w)
	for _, id := range ids.All() {
		if _, err := fmt.Fprintln(bw, id); err != nil {
			return fmt.Errorf("writing index: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	return nil
}
