package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agraph-dev/agraph/pkg/config"
	"github.com/agraph-dev/agraph/pkg/export"
	"github.com/agraph-dev/agraph/pkg/logging"
	"github.com/agraph-dev/agraph/pkg/metrics"
	"github.com/agraph-dev/agraph/pkg/pipeline"
	"github.com/agraph-dev/agraph/pkg/query"
)

var (
	exprStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// stringList collects a repeatable flag in the order given.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ", ") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var queries, transforms, settings stringList

	configPath := flag.String("config", "", "YAML config file")
	output := flag.String("o", "", "Output path for the DOT description (default stdout)")
	themePath := flag.String("theme", "", "YAML theme file for the exported graph")
	human := flag.Bool("human", false, "Render underscores in vertex names as spaces")
	stats := flag.Bool("stats", false, "Print pipeline metrics to stderr after the run")
	level := flag.String("level", "", "Minimum log level (debug, info, warn, error)")
	flag.Var(&queries, "q", "Query expression (repeatable)")
	flag.Var(&transforms, "t", "Transform expression (repeatable)")
	flag.Var(&settings, "s", "Plugin setting key=value (repeatable)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fail(err)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *themePath != "" {
		cfg.Theme = *themePath
	}
	if *human {
		cfg.HumanReadable = true
	}
	if *level != "" {
		cfg.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	if err := cfg.ParseSettings(settings); err != nil {
		fail(err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Level))

	input, source, err := readInput(flag.Arg(0))
	if err != nil {
		fail(err)
	}

	theme := export.DefaultTheme()
	if cfg.Theme != "" {
		theme, err = export.LoadThemeFile(cfg.Theme)
		if err != nil {
			fail(err)
		}
	}

	reg := metrics.NewRegistry()
	pipe, err := pipeline.New(logger, reg, nil)
	if err != nil {
		fail(err)
	}

	// Transforms run before queries so both see the same built graph and
	// the staged writes land in a predictable order.
	expressions := append(append([]string{}, transforms...), queries...)

	result, err := pipe.Run(input, expressions, pipeline.Options{
		Source:        source,
		HumanReadable: cfg.HumanReadable,
		Theme:         theme,
	})
	if err != nil {
		fail(err)
	}

	for _, res := range result.Expressions {
		if res.Transform {
			continue
		}
		fmt.Println(exprStyle.Render(res.Expression))
		fmt.Println(resultStyle.Render(formatValue(res.Value)))
	}

	if err := writeOutput(cfg.Output, result.DOT); err != nil {
		fail(err)
	}

	if *stats {
		summary, err := reg.Summary()
		if err != nil {
			fail(err)
		}
		fmt.Fprintln(os.Stderr, statsStyle.Render(summary))
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <graph-file>\n\nReads an account access graph, answers queries and writes a DOT description.\nPass '-' as the graph file to read from stdin.\n\nFlags:\n",
		os.Args[0])
	flag.PrintDefaults()
}

func readInput(path string) (text, source string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), path, nil
}

func writeOutput(path, dot string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, dot)
		return err
	}
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// formatValue renders an expression result for the terminal.
func formatValue(v query.Value) string {
	switch v.Kind {
	case query.ValueVertexSet:
		return "  {" + strings.Join(v.Vertices, ", ") + "}"
	case query.ValueVertexSets:
		lines := make([]string, 0, len(v.Sets))
		for _, set := range v.Sets {
			lines = append(lines, "  {"+strings.Join(set, ", ")+"}")
		}
		return strings.Join(lines, "\n")
	default:
		return "  " + v.Str
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("error: %v", err)))
	os.Exit(1)
}
