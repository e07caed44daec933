package seq

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Read parses a FASTA or GenBank file into fragments.
func Read(path string) (fragments []Fragment, err error) {
	if !filepath.IsAbs(path) {
		path, err = filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create path to input file")
		}
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input file")
	}
	file := string(dat)

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, "fa") || strings.HasSuffix(lower, "fasta") || strings.HasPrefix(file, ">") {
		return ReadFasta(path, file)
	}

	if strings.HasSuffix(lower, "gb") || strings.HasSuffix(lower, "gbk") || strings.HasSuffix(lower, "genbank") || strings.HasPrefix(file, "LOCUS") {
		return ReadGenbank(path, file)
	}

	return nil, errors.Errorf("failed to parse %s: unrecognized file type", path)
}

// unwantedChars is anything in a sequence line that is not a base.
var unwantedChars = regexp.MustCompile(`(?i)[^acgturykmswbdhvn]`)

// ReadFasta parses a multi-FASTA file. Headers containing the word "circular"
// mark circular sequences.
func ReadFasta(path, contents string) (fragments []Fragment, err error) {
	lines := strings.Split(contents, "\n")

	var headerIndices []int
	var headers []string
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
			headers = append(headers, strings.TrimSpace(line[1:]))
		}
	}

	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}
		joined := strings.Join(lines[headerIndex+1:nextLine], "")
		s := unwantedChars.ReplaceAllString(joined, "")

		id := headers[i]
		circular := strings.Contains(strings.ToLower(id), "circular")
		if fields := strings.Fields(id); len(fields) > 0 {
			id = fields[0]
		}
		fragments = append(fragments, New(id, s, circular))
	}

	if len(fragments) < 1 {
		return nil, errors.Errorf("failed to parse fragment(s) from %s", path)
	}

	return fragments, nil
}

// locusLine is the first GenBank line: name, length, and topology.
var locusLine = regexp.MustCompile(`(?m)^LOCUS\s+(\S+)(.*)$`)

// ReadGenbank parses the records of a GenBank file. Features are not kept.
func ReadGenbank(path, contents string) (fragments []Fragment, err error) {
	for _, record := range strings.Split(contents, "\n//") {
		if strings.TrimSpace(record) == "" {
			continue
		}

		split := strings.Split(record, "ORIGIN")
		if len(split) != 2 {
			return nil, errors.Errorf("failed to parse %s: improperly formatted genbank file", path)
		}

		id := filepath.Base(path)
		circular := false
		if m := locusLine.FindStringSubmatch(split[0]); m != nil {
			id = m[1]
			circular = strings.Contains(strings.ToLower(m[2]), "circular")
		}

		s := unwantedChars.ReplaceAllString(split[1], "")
		fragments = append(fragments, New(id, s, circular))
	}

	if len(fragments) < 1 {
		return nil, errors.Errorf("failed to parse fragment(s) from %s", path)
	}

	return fragments, nil
}
