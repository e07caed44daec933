package enzyme

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed enzymes.tsv
var defaultTable string

// DB is a read-only table of enzymes by name.
type DB struct {
	// enzymes is a map between an enzyme's name and its cut site
	enzymes map[string]string
}

// Default returns the table of enzymes shipped with the binary.
func Default() *DB {
	db, err := read(strings.NewReader(defaultTable))
	if err != nil {
		panic(err)
	}
	return db
}

// Load reads a tab separated file of enzyme names and cut sites.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open enzyme table")
	}
	defer f.Close()

	return read(f)
}

func read(r io.Reader) (*DB, error) {
	enzymes := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		columns := strings.Fields(text)
		if len(columns) != 2 {
			return nil, errors.Errorf("line %d of enzyme table: expected name and site, got %q", line, text)
		}
		if _, err := Parse(columns[0], columns[1]); err != nil {
			return nil, errors.Wrapf(err, "line %d of enzyme table", line)
		}
		enzymes[columns[0]] = strings.ToUpper(columns[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read enzyme table")
	}

	return &DB{enzymes: enzymes}, nil
}

// Get returns the named enzymes. Names are matched exactly first, then
// ignoring case.
func (db *DB) Get(names ...string) ([]Enzyme, error) {
	enzymes := make([]Enzyme, 0, len(names))
	for _, name := range names {
		key, ok := db.lookup(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknown, "%s is not in the enzyme table", name)
		}
		e, err := Parse(key, db.enzymes[key])
		if err != nil {
			return nil, err
		}
		enzymes = append(enzymes, e)
	}
	return enzymes, nil
}

func (db *DB) lookup(name string) (string, bool) {
	if _, ok := db.enzymes[name]; ok {
		return name, true
	}
	for n := range db.enzymes {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Names returns every enzyme name, sorted.
func (db *DB) Names() []string {
	names := make([]string, 0, len(db.enzymes))
	for name := range db.enzymes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Site returns an enzyme's cut site.
func (db *DB) Site(name string) (string, bool) {
	site, ok := db.enzymes[name]
	return site, ok
}

// Find returns the names of enzymes similar to name. An exact match is
// returned alone. If several names contain name they are all returned,
// otherwise those beneath a levenshtein distance cutoff are.
func (db *DB) Find(name string) []string {
	if key, ok := db.lookup(name); ok {
		return []string{key}
	}

	ldCutoff := 2
	var containing, lowDistance []string
	for _, n := range db.Names() {
		if strings.Contains(strings.ToUpper(n), strings.ToUpper(name)) {
			containing = append(containing, n)
		} else if len(n) > ldCutoff && ld(name, n, true) <= ldCutoff {
			lowDistance = append(lowDistance, n)
		}
	}

	if len(containing) < 3 {
		lowDistance = append(lowDistance, containing...)
		sort.Strings(lowDistance)
		return lowDistance
	}
	return containing
}

// ld computes the levenshtein distance between two strings
func ld(s, t string, ignoreCase bool) int {
	if ignoreCase {
		s = strings.ToUpper(s)
		t = strings.ToUpper(t)
	}
	d := make([][]int, len(s)+1)
	for i := range d {
		d[i] = make([]int, len(t)+1)
	}
	for i := range d {
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for j := 1; j <= len(t); j++ {
		for i := 1; i <= len(s); i++ {
			if s[i-1] == t[j-1] {
				d[i][j] = d[i-1][j-1]
			} else {
				d[i][j] = min(d[i-1][j], d[i][j-1], d[i-1][j-1]) + 1
			}
		}
	}
	return d[len(s)][len(t)]
}
