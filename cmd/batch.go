package cmd

import (
	"os"

	"github.com/dgruano/ShareYourCloning-backend/internal/cloning"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// batchCmd runs request files concurrently
var batchCmd = &cobra.Command{
	Use:                        "batch [request.yaml] ... [requestN.yaml]",
	Short:                      "Run assembly requests written as YAML files",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       batchExec,
	SuggestionsMinimumDistance: 2,
	Example: `  syc batch --out results gibson.yaml restriction.yaml

A request file:

  technique: gibson
  params:
    minimal_overlap: 20
  fragments:
    - file: parts.fa
    - id: insert
      seq: ATGCCGTTAGC...
      left: {length: 4, kind: "5'"}
  assembly: "circular: 1[50:70]->2[0:20], 2[50:70]->1[0:20]"`,
	Long: `Run assembly requests written as YAML files. Requests run concurrently,
at most --batch-concurrency at a time. A failed request is reported and the
others still run.

Each request's results are written to <out>/<request>.json, or to stdout
if --out isn't set.`,
	Aliases: []string{"run"},
}

func batchExec(cmd *cobra.Command, args []string) error {
	reqs := make([]cloning.Request, 0, len(args))
	for _, path := range args {
		req, err := cloning.ReadRequest(path)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	dir, _ := cmd.Flags().GetString("out")
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	outcomes, err := service.RunBatch(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			stderr.Printf("%s: %v", o.Request.Name, o.Err)
			failed++
			continue
		}
		if err := writeResult(cmd, o.Result, dir); err != nil {
			return err
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d requests failed", failed, len(outcomes))
	}
	return nil
}

// set flags
func init() {
	batchCmd.Flags().StringP("out", "o", "", "directory to write each request's JSON to, stdout by default")
	batchCmd.Flags().StringP("genbank", "g", "", "directory to write each product to as GenBank")

	RootCmd.AddCommand(batchCmd)
}
