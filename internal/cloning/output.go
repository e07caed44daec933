package cloning

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// Solution is a single way of joining the request's fragments.
type Solution struct {
	// Assembly is the plan in notation, ex: "circular: 1[50:70]->2[0:20], 2[50:70]->1[0:20]",
	// or the piece of a digest, ex: "digest: [4:8]@EcoRI, [40:44]@EcoRI"
	Assembly string `json:"assembly"`

	// Product built by the plan
	Product seq.Fragment `json:"product"`
}

// Output is a struct containing the results of a request.
type Output struct {
	// Request's ID
	Request string `json:"request"`

	// Name of the request, if it was read from a file
	Name string `json:"name,omitempty"`

	// Technique used to join the fragments
	Technique Technique `json:"technique"`

	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to run the request
	Execution float64 `json:"execution"`

	// Solutions in canonical plan order, or digest pieces in sequence order
	Solutions []Solution `json:"solutions"`
}

// NewOutput gathers a result's plans and products.
func NewOutput(res *Result) Output {
	t := res.Time
	out := Output{
		Request:   res.RequestID,
		Name:      res.Name,
		Technique: res.Technique,
		Time: fmt.Sprintf(
			"%d/%02d/%02d %02d:%02d:%02d",
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		),
		Execution: res.Execution.Seconds(),
		Solutions: []Solution{},
	}
	for i, p := range res.Plans {
		out.Solutions = append(out.Solutions, Solution{Assembly: p.String(), Product: res.Products[i]})
	}
	for i, p := range res.Pieces {
		out.Solutions = append(out.Solutions, Solution{Assembly: p.String(), Product: res.Products[i]})
	}
	return out
}

// WriteJSON writes a result as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	output, err := json.MarshalIndent(NewOutput(res), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize output")
	}
	if _, err = w.Write(append(output, '\n')); err != nil {
		return errors.Wrap(err, "failed to write the output")
	}
	return nil
}

// WriteGenbank writes each product of a result to its own GenBank file in a
// directory and returns the files' paths.
func WriteGenbank(dir string, res *Result) (paths []string, err error) {
	name := res.Name
	if name == "" {
		name = res.RequestID
	}

	for i, product := range res.Products {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.gb", name, i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create the output")
		}
		werr := seq.WriteGenbank(f, product, res.Time)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return nil, errors.Wrapf(werr, "failed to write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
