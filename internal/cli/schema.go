// Package cli holds the pieces shared by the docsum client and the docsumd
// daemon: the --help-json schema printer and the command annotations it
// reads.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command annotation keys. Values are comma-separated lists.
const (
	// AnnotationEnv lists the environment variables a command reads.
	AnnotationEnv = "docsum_env"
	// AnnotationFileTypes lists the document extensions a command uploads.
	AnnotationFileTypes = "docsum_file_types"
)

var argPattern = regexp.MustCompile(`<([^>]+)>`)

type FlagSchema struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Inherited   bool   `json:"inherited,omitempty"`
}

// CommandSchema describes one command for scripts and agents driving the
// CLI. Args come from the <placeholders> in Use.
type CommandSchema struct {
	Name        string          `json:"name"`
	Use         string          `json:"use,omitempty"`
	Aliases     []string        `json:"aliases,omitempty"`
	Description string          `json:"description,omitempty"`
	Long        string          `json:"long,omitempty"`
	Args        []string        `json:"args,omitempty"`
	FileTypes   []string        `json:"file_types,omitempty"`
	Env         []string        `json:"env,omitempty"`
	Flags       []FlagSchema    `json:"flags,omitempty"`
	Subcommands []CommandSchema `json:"subcommands,omitempty"`
}

// Annotate records the environment variables and upload types of cmd so
// they show up in its schema.
func Annotate(cmd *cobra.Command, env []string, fileTypes []string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	if len(env) > 0 {
		cmd.Annotations[AnnotationEnv] = strings.Join(env, ",")
	}
	if len(fileTypes) > 0 {
		cmd.Annotations[AnnotationFileTypes] = strings.Join(fileTypes, ",")
	}
	return cmd
}

func GenerateSchema(cmd *cobra.Command) CommandSchema {
	schema := CommandSchema{
		Name:        cmd.Name(),
		Use:         cmd.Use,
		Aliases:     cmd.Aliases,
		Description: cmd.Short,
		Long:        cmd.Long,
		Args:        useArgs(cmd.Use),
		FileTypes:   annotationList(cmd, AnnotationFileTypes),
		Env:         annotationList(cmd, AnnotationEnv),
		Flags:       extractFlags(cmd),
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" || sub.Hidden {
			continue
		}
		schema.Subcommands = append(schema.Subcommands, GenerateSchema(sub))
	}

	return schema
}

func useArgs(use string) []string {
	var args []string
	for _, m := range argPattern.FindAllStringSubmatch(use, -1) {
		args = append(args, m[1])
	}
	return args
}

func annotationList(cmd *cobra.Command, key string) []string {
	value := cmd.Annotations[key]
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// extractFlags lists the command's own flags followed by the persistent
// flags it inherits from its parents, such as --output and --api-url.
func extractFlags(cmd *cobra.Command) []FlagSchema {
	var flags []FlagSchema

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if skipFlag(f) {
			return
		}
		flags = append(flags, flagToSchema(f, false))
	})
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		if skipFlag(f) {
			return
		}
		flags = append(flags, flagToSchema(f, true))
	})

	return flags
}

func skipFlag(f *pflag.Flag) bool {
	return f.Name == "help-json" || f.Name == "help" || f.Name == "version"
}

func flagToSchema(f *pflag.Flag, inherited bool) FlagSchema {
	_, required := f.Annotations[cobra.BashCompOneRequiredFlag]
	return FlagSchema{
		Name:        f.Name,
		Shorthand:   f.Shorthand,
		Type:        f.Value.Type(),
		Default:     f.DefValue,
		Description: f.Usage,
		Required:    required,
		Inherited:   inherited,
	}
}

// WriteSchema writes the schema of cmd as indented JSON.
func WriteSchema(w io.Writer, cmd *cobra.Command) error {
	output, err := json.MarshalIndent(GenerateSchema(cmd), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("help-json", false, "Output command schema as JSON")
}

// CheckHelpJSON prints the schema of the addressed command and exits when
// --help-json is present. It runs before Execute so positional argument
// validation does not reject `docsum summarize --help-json`.
func CheckHelpJSON(rootCmd *cobra.Command) {
	for i, arg := range os.Args {
		if arg != "--help-json" {
			continue
		}
		if err := WriteSchema(os.Stdout, findTargetCommand(rootCmd, os.Args[1:i])); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
}

func findTargetCommand(cmd *cobra.Command, args []string) *cobra.Command {
	if len(args) == 0 {
		return cmd
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == args[0] || sub.HasAlias(args[0]) {
			return findTargetCommand(sub, args[1:])
		}
	}

	return cmd
}
