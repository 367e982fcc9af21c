package commands

import (
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
	"git.home.luguber.info/inful/featuredoc/internal/registry"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	RunFlags

	Format string `short:"f" help:"Output format" enum:"text,yaml" default:"text"`
}

type listEntry struct {
	Group    string `yaml:"group"`
	Name     string `yaml:"name"`
	Class    string `yaml:"class"`
	Filename string `yaml:"filename"`
	Summary  string `yaml:"summary,omitempty"`
}

func (l *ListCmd) Run(global *Global, root *CLI) error {
	r, err := prepareRun(root.Config, l.RunFlags)
	if err != nil {
		return err
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	logger := global.logger()
	units, err := r.generator(reg, logger).WorkUnits()
	if err != nil {
		return err
	}
	for _, name := range undocumented(reg, r.root) {
		logger.Warn("Registered type has no source documentation", logfields.Class(name))
	}

	entries := make([]listEntry, 0, len(units))
	for _, u := range units {
		entries = append(entries, listEntry{
			Group:    u.Group,
			Name:     u.Name,
			Class:    u.ClassDoc.QualifiedName(),
			Filename: u.Filename,
			Summary:  u.ClassDoc.Summary(),
		})
	}

	out := global.stdout()
	switch l.Format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode work units").Build()
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "GROUP\tNAME\tFILENAME")
		for _, e := range entries {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Group, e.Name, e.Filename)
		}
		return tw.Flush()
	}
}

// undocumented returns the registered names that the parsed source tree does
// not declare. Such types can never produce a page.
func undocumented(reg *registry.Registry, root *classdoc.Root) []string {
	var missing []string
	for _, name := range reg.Names() {
		if _, ok := root.ClassNamed(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
