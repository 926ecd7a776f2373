// Package instance reads knapsack instances from the plain text format:
// the item count N and the capacity, followed by N "weight value" pairs.
// Tokens are separated by any whitespace; anything after the last pair is
// ignored.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/knapsack/knapsack"
)

var (
	// ErrMalformed indicates a token that is not a valid integer, or a negative item count.
	ErrMalformed = errors.New("instance: malformed input")

	// ErrTruncated indicates that the input ended before all declared items were read.
	ErrTruncated = errors.New("instance: truncated input")
)

const maxPrealloc = 1 << 16

// Instance is a parsed problem together with where it came from.
type Instance struct {
	// Path is the file the instance was read from; empty for Parse.
	Path string
	// Name is the base name of Path without its extension.
	Name string
	Set  *knapsack.ItemSet
}

// Load opens path and parses it.
func Load(path string) (Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return Instance{}, err
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return Instance{}, fmt.Errorf("%s: %w", path, err)
	}
	inst.Path = path
	inst.Name = Stem(path)

	return inst, nil
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// tokenReader yields whitespace-separated integers and tracks their position.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func (t *tokenReader) next(what string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: missing %s at token %d", ErrTruncated, what, t.pos+1)
	}
	t.pos++
	tok := t.sc.Text()
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s at token %d is %q", ErrMalformed, what, t.pos, tok)
	}

	return v, nil
}

// Parse reads one instance from r. Item validation (negative weights or
// values, negative capacity) is left to knapsack.NewItemSet.
func Parse(r io.Reader) (Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tr := &tokenReader{sc: sc}

	n, err := tr.next("item count")
	if err != nil {
		return Instance{}, err
	}
	if n < 0 {
		return Instance{}, fmt.Errorf("%w: item count %d", ErrMalformed, n)
	}
	capacity, err := tr.next("capacity")
	if err != nil {
		return Instance{}, err
	}

	// The declared count is untrusted; grow as pairs arrive.
	var (
		items = make([]knapsack.Item, 0, min(n, maxPrealloc))
		it    knapsack.Item
		i     int
	)
	for i = 0; i < n; i++ {
		if it.Weight, err = tr.next(fmt.Sprintf("weight of item %d", i)); err != nil {
			return Instance{}, err
		}
		if it.Value, err = tr.next(fmt.Sprintf("value of item %d", i)); err != nil {
			return Instance{}, err
		}
		items = append(items, it)
	}

	set, err := knapsack.NewItemSet(items, capacity)
	if err != nil {
		return Instance{}, err
	}

	return Instance{Set: set}, nil
}
