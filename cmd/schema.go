package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/config"
	"github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/schema"
)

// viewSchemas maps schema names to the JSON document they describe.
var viewSchemas = map[string]struct {
	value interface{}
	title string
}{
	"outputs":          {&[]present.OutputView{}, "Conductor outputs"},
	"toplevels":        {&[]present.ToplevelView{}, "Conductor toplevels"},
	"workspace-groups": {&[]present.WorkspaceGroupView{}, "Conductor workspace groups"},
	"workspaces":       {&[]present.WorkspaceView{}, "Conductor workspaces"},
}

func schemaNames() []string {
	names := []string{"config"}
	for name := range viewSchemas {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// NewSchemaCmd creates the `schema` command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [NAME]",
		Short: "Print a JSON Schema for the config file or a JSON listing",
		Long: fmt.Sprintf(`Print a JSON Schema. NAME is one of: %s.
Without NAME the config file schema is printed.`, strings.Join(schemaNames(), ", ")),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: schemaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "config"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := generateSchema(name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	return skipConfig(cmd)
}

func generateSchema(name string) ([]byte, error) {
	if name == "config" {
		return config.GenerateSchema()
	}
	view, ok := viewSchemas[name]
	if !ok {
		return nil, errors.InvalidInput("unknown schema %q (want one of: %s)", name, strings.Join(schemaNames(), ", "))
	}
	return schema.Generate(view.value, schema.Options{Title: view.title, Strict: true})
}
