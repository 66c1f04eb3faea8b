package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// manifest is the YAML input of the plan command. Items are added in order,
// then the ids under remove are removed in order.
type manifest struct {
	Items  []manifestItem `yaml:"items"`
	Remove []uint32       `yaml:"remove"`
}

type manifestItem struct {
	ID       uint32 `yaml:"id"`
	Name     string `yaml:"name"`
	Quantity uint32 `yaml:"quantity"`
	Quality  string `yaml:"quality"`
	Expires  string `yaml:"expires"`
	MaxRow   int    `yaml:"max_row"`
	Span     int    `yaml:"span"`
}

func (m manifestItem) item() (types.Item, error) {
	q, err := buildQuality(m.Quality, m.Expires, m.MaxRow, m.Span)
	if err != nil {
		return types.Item{}, fmt.Errorf("item %d: %w", m.ID, err)
	}
	return types.Item{ID: m.ID, Name: m.Name, Quantity: m.Quantity, Quality: q}, nil
}

func readManifest(path string) (manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return manifest{}, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return manifest{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// planReport is the JSON output of the plan command.
type planReport struct {
	Layout   []types.Placement `json:"layout"`
	Failures []string          `json:"failures"`
	Stats    types.Stats       `json:"stats"`
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <manifest.yaml>",
		Short: "Place the items of a manifest and print the resulting layout",
		Long: `Plan reads a YAML manifest, adds its items in order, removes the listed ids,
and prints the layout. Items that cannot be placed are reported and skipped.

Example manifest:
  items:
    - {id: 1, name: flour, quantity: 4, quality: normal}
    - {id: 2, name: eggs, quantity: 12, quality: fragile, expires: 01-02-2027, max_row: 3}
    - {id: 3, name: planks, quantity: 1, quality: oversized, span: 3}
  remove: [1]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, args[0])
		},
	}
}

func (a *app) runPlan(cmd *cobra.Command, path string) (err error) {
	m, err := readManifest(path)
	if err != nil {
		return userErrorf("read manifest: %w", err)
	}

	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var failures []error
	for _, mi := range m.Items {
		it, perr := mi.item()
		if perr == nil {
			perr = s.engine.Add(it)
		}
		if perr != nil {
			failures = append(failures, perr)
		}
	}
	for _, id := range m.Remove {
		if rerr := s.engine.Remove(id); rerr != nil {
			failures = append(failures, rerr)
		}
	}

	out := printer{w: cmd.OutOrStdout(), jsonMode: a.flags.jsonMode}
	if a.flags.jsonMode {
		report := planReport{Layout: s.engine.Layout(), Failures: []string{}, Stats: s.engine.Stats()}
		for _, f := range failures {
			report.Failures = append(report.Failures, f.Error())
		}
		return out.json(report)
	}

	errOut := cmd.ErrOrStderr()
	for _, f := range failures {
		fmt.Fprintln(errOut, "skipped:", f)
	}
	if err := out.layout(s.engine.Layout()); err != nil {
		return err
	}
	if len(failures) > 0 {
		fmt.Fprintf(errOut, "%d of %d operations failed\n", len(failures), len(m.Items)+len(m.Remove))
	}
	return nil
}
