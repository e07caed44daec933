package cloning

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// requestFile is the YAML layout of a request, ex:
//
//	technique: gibson
//	params:
//	  minimal_overlap: 20
//	fragments:
//	  - file: vector.gb
//	  - id: insert
//	    seq: ATGC...
//	assembly: "circular: 1[980:1000]->2[0:20], 2[380:400]->1[0:20]"
//
// The assembly of a digest request is the piece wanted, ex:
// "digest: [4:8]@EcoRI, [40:44]@EcoRI".
type requestFile struct {
	Technique Technique       `yaml:"technique"`
	Params    Params          `yaml:"params"`
	Fragments []fragmentEntry `yaml:"fragments"`
	Assembly  string          `yaml:"assembly"`
}

// fragmentEntry is a fragment written inline or the path of a FASTA or
// GenBank file, relative to the request file, whose records are all used.
type fragmentEntry struct {
	File         string `yaml:"file"`
	seq.Fragment `yaml:",inline"`
}

// ReadRequest reads a YAML request file.
func ReadRequest(path string) (Request, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return Request{}, errors.Wrap(err, "failed to read request file")
	}

	var file requestFile
	if err := yaml.Unmarshal(dat, &file); err != nil {
		return Request{}, errors.Wrapf(err, "failed to parse request file %s", path)
	}
	if file.Technique == "" {
		return Request{}, errors.Errorf("request file %s has no technique", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	req := Request{Name: name, Technique: file.Technique, Params: file.Params}

	for i, entry := range file.Fragments {
		if entry.File == "" {
			f := seq.New(entry.ID, entry.Seq, entry.Circular).WithEnds(entry.Left, entry.Right)
			f.Primer = entry.Primer
			if f.ID == "" {
				f.ID = name + "_" + strconv.Itoa(i+1)
			}
			req.Fragments = append(req.Fragments, f)
			continue
		}

		fragPath := entry.File
		if !filepath.IsAbs(fragPath) {
			fragPath = filepath.Join(filepath.Dir(path), fragPath)
		}
		frags, err := seq.Read(fragPath)
		if err != nil {
			return Request{}, errors.Wrapf(err, "fragment %d", i+1)
		}
		req.Fragments = append(req.Fragments, frags...)
	}

	if file.Assembly != "" {
		if err := req.SetAssembly(file.Assembly); err != nil {
			return Request{}, err
		}
	}
	return req, nil
}
