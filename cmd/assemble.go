package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/cloning"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	assemblyHelp = `a known assembly to build rather than every possible one, ex:
"circular: 1[50:70]->2[0:20], 2[50:70]->1[0:20]", or the piece of a digest, ex:
"digest: [4:8]@EcoRI, [40:44]@EcoRI"`

	enzymeHelp = `enzymes to cut the fragments with.
'syc find enzyme' prints a list of recognized enzymes.`
)

// assembleCmd is for joining fragments read from FASTA or GenBank files
var assembleCmd = &cobra.Command{
	Use:                        "assemble",
	Short:                      "Assemble fragments read from FASTA or GenBank files",
	SuggestionsMinimumDistance: 3,
	Long: `Find every way the fragments in the input files can be joined by a cloning
technique and build the products. Fragments are used in the order of the files
and of the records within each file.

Fragments from files have blunt ends. Use 'syc batch' with a request file to
give fragments sticky ends.`,
	Aliases: []string{"build", "join"},
}

// ligationCmd joins fragments by their ends
var ligationCmd = &cobra.Command{
	Use:                        "ligation [file] ... [fileN]",
	Short:                      "Ligate fragments by their sticky or blunt ends",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       assembleExec(cloning.Ligation),
	SuggestionsMinimumDistance: 3,
	Example:                    "  syc assemble ligation --blunt insert.fa vector.gb",
}

// gibsonCmd joins fragments by the homology of their terminal sequences
var gibsonCmd = &cobra.Command{
	Use:                        "gibson [file] ... [fileN]",
	Short:                      "Join fragments by the homology between their ends",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       assembleExec(cloning.Gibson),
	SuggestionsMinimumDistance: 3,
	Example:                    "  syc assemble gibson --minimal-homology 20 parts.fa",
	Aliases:                    []string{"homology"},
}

// restrictionCmd cuts fragments with enzymes and ligates the cut ends
var restrictionCmd = &cobra.Command{
	Use:                        "restriction [file] ... [fileN]",
	Short:                      "Digest fragments with enzymes and ligate the products",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       assembleExec(cloning.RestrictionLigation),
	SuggestionsMinimumDistance: 3,
	Example:                    "  syc assemble restriction -e EcoRI,BamHI insert.fa vector.gb",
	Long: `Digest fragments with enzymes and ligate the products. Fragments are only
joined at enzyme cuts. A single fragment is closed on itself or has the part
between two cuts removed.`,
	Aliases: []string{"restriction-ligation"},
}

// digestCmd cuts one sequence with enzymes into sticky ended pieces
var digestCmd = &cobra.Command{
	Use:                        "digest [file]",
	Short:                      "Cut a sequence with enzymes into pieces ready for ligation",
	Args:                       cobra.ExactArgs(1),
	RunE:                       assembleExec(cloning.Digest),
	SuggestionsMinimumDistance: 3,
	Example: `  syc assemble digest -e EcoRI insert.fa
  syc assemble digest -e EcoRI -a "digest: [4:8]@EcoRI, [40:44]@EcoRI" insert.fa`,
	Long: `Cut a sequence with enzymes and return the piece between each pair of
consecutive cuts, with the overhangs the cuts leave as its ends. The file must
hold one sequence and every enzyme must cut it.

A known piece is written by the overhang and enzyme of the cut on each side,
with "start" and "end" for the ends of a linear sequence.`,
	Aliases: []string{"cut"},
}

// pcrCmd amplifies a template with two primers
var pcrCmd = &cobra.Command{
	Use:                        "pcr [forward] [template] [reverse]",
	Short:                      "Amplify a template with a forward and a reverse primer",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       assembleExec(cloning.PCR),
	SuggestionsMinimumDistance: 3,
	Example:                    "  syc assemble pcr --allowed-mismatches 1 primers.fa",
	Long: `Amplify a template with a forward and a reverse primer. The files must hold
three sequences in order: the forward primer, the template and the reverse
primer, written 5' to 3'.`,
}

// recombinationCmd inserts fragments into a template between homology arms
var recombinationCmd = &cobra.Command{
	Use:                        "recombination [template] [insert] ... [insertN]",
	Short:                      "Insert fragments into a linear template by homologous recombination",
	Args:                       cobra.MinimumNArgs(1),
	RunE:                       assembleExec(cloning.HomologousRecombination),
	SuggestionsMinimumDistance: 3,
	Long: `Insert fragments into a linear template by homologous recombination. The
first sequence is the template, the others are inserted into it in order.`,
	Aliases: []string{"homologous-recombination", "hr"},
}

// assembleExec returns the command that reads fragments and runs a request
// with technique t.
func assembleExec(t cloning.Technique) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		req, err := parseAssembleFlags(cmd, t, args)
		if err != nil {
			return err
		}

		res, err := service.Run(cmd.Context(), req)
		if err != nil {
			return err
		}
		return writeResult(cmd, res, "")
	}
}

// parseAssembleFlags reads the fragment files and the flags of an assemble
// subcommand into a request with technique t.
func parseAssembleFlags(cmd *cobra.Command, t cloning.Technique, args []string) (req cloning.Request, err error) {
	flags := cmd.Flags()
	req.Technique = t

	for _, path := range args {
		frags, err := seq.Read(path)
		if err != nil {
			return req, err
		}
		req.Fragments = append(req.Fragments, frags...)
	}

	if req.Name, err = flags.GetString("name"); err != nil {
		return req, err
	}
	if req.Name == "" {
		req.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	if a, _ := flags.GetString("assembly"); a != "" {
		if err := req.SetAssembly(a); err != nil {
			return req, err
		}
	}

	if flags.Lookup("enzymes") != nil {
		if req.Params.Enzymes, err = flags.GetStringSlice("enzymes"); err != nil {
			return req, err
		}
	}
	if flags.Lookup("blunt") != nil {
		if req.Params.Blunt, err = flags.GetBool("blunt"); err != nil {
			return req, err
		}
	}
	return req, nil
}

// writeResult writes a result as JSON to the --out file, or stdout, and its
// products to GenBank files in the --genbank directory. If dir is set the
// JSON is written there as <name>.json instead.
func writeResult(cmd *cobra.Command, res *cloning.Result, dir string) error {
	out, _ := cmd.Flags().GetString("out")
	genbank, _ := cmd.Flags().GetString("genbank")

	var w io.Writer = cmd.OutOrStdout()
	if dir != "" {
		out = filepath.Join(dir, res.Name+".json")
	}
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "failed to create the output")
		}
		defer f.Close()
		w = f
	}
	if err := cloning.WriteJSON(w, res); err != nil {
		return err
	}

	if genbank == "" {
		return nil
	}
	if err := os.MkdirAll(genbank, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", genbank)
	}
	paths, err := cloning.WriteGenbank(genbank, res)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.ErrOrStderr(), p)
	}
	return nil
}

// set flags
func init() {
	assembleCmd.PersistentFlags().StringP("assembly", "a", "", assemblyHelp)
	assembleCmd.PersistentFlags().StringP("name", "n", "", "name of the request, the first file's name by default")
	assembleCmd.PersistentFlags().StringP("out", "o", "", "output JSON file name, stdout by default")
	assembleCmd.PersistentFlags().StringP("genbank", "g", "", "directory to write each product to as GenBank")

	ligationCmd.Flags().BoolP("blunt", "b", false, "join blunt ends rather than sticky ones")
	restrictionCmd.Flags().StringSliceP("enzymes", "e", nil, enzymeHelp)
	_ = restrictionCmd.MarkFlagRequired("enzymes")
	digestCmd.Flags().StringSliceP("enzymes", "e", nil, enzymeHelp)
	_ = digestCmd.MarkFlagRequired("enzymes")

	assembleCmd.AddCommand(ligationCmd)
	assembleCmd.AddCommand(gibsonCmd)
	assembleCmd.AddCommand(restrictionCmd)
	assembleCmd.AddCommand(pcrCmd)
	assembleCmd.AddCommand(recombinationCmd)
	assembleCmd.AddCommand(digestCmd)

	RootCmd.AddCommand(assembleCmd)
}
