// Command htmlcoredump parses HTML and prints one line per event pushed to
// the Event Sink, for inspecting how a document balances without building a
// tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MeKo-Christian/htmlcore"
	"github.com/MeKo-Christian/htmlcore/sink"
)

var version = "dev"

type config struct {
	fragment   string
	namespaces bool
	strict     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, inputPath, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if inputPath == "" {
		return nil
	}

	input, err := readInput(inputPath, stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var dump dumpSink
	opts := []htmlcore.Option{}
	if cfg.namespaces {
		opts = append(opts, htmlcore.WithNamespaces(true))
	}
	if cfg.strict {
		opts = append(opts, htmlcore.WithStrictMode())
	}

	var parseErr error
	if cfg.fragment != "" {
		parseErr = htmlcore.ParseFragment(string(input), cfg.fragment, &dump, opts...)
	} else {
		parseErr = htmlcore.ParseBytes(input, &dump, opts...)
	}

	for _, line := range dump.lines {
		fmt.Fprintln(stdout, line)
	}
	if parseErr != nil {
		return fmt.Errorf("parsing HTML: %w", parseErr)
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (config, string, error) {
	fs := flag.NewFlagSet("htmlcoredump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	var showVersion bool
	fs.StringVar(&cfg.fragment, "fragment", "", "parse as a fragment with this element name as context")
	fs.BoolVar(&cfg.namespaces, "namespaces", false, "enable SVG/MathML namespace-aware parsing")
	fs.BoolVar(&cfg.strict, "strict", false, "exit with an error if any anomaly is reported")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, "", err
	}
	if showVersion {
		fmt.Fprintln(stderr, version)
		return cfg, "", nil
	}

	path := fs.Arg(0)
	return cfg, orStdin(path), nil
}

func orStdin(path string) string {
	if path == "" {
		return "-"
	}
	return path
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// dumpSink renders each sink.Sink callback as one human-readable line,
// indented by open-element depth so nesting is visible at a glance.
type dumpSink struct {
	lines []string
	depth int
}

func (d *dumpSink) indent() string { return strings.Repeat("  ", d.depth) }

func (d *dumpSink) StartDocument(encodingName string, namespaceAware bool, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("StartDocument encoding=%q namespaceAware=%v", encodingName, namespaceAware))
	return nil
}

func (d *dumpSink) XMLDecl(version, encodingName string, standalone *bool, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%sXMLDecl version=%q encoding=%q", d.indent(), version, encodingName))
	return nil
}

func (d *dumpSink) DoctypeDecl(name, publicID, systemID string, forceQuirks bool, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%sDoctype %s PUBLIC=%q SYSTEM=%q quirks=%v", d.indent(), name, publicID, systemID, forceQuirks))
	return nil
}

func (d *dumpSink) StartElement(name, namespaceURI string, attrs []sink.Attr, aug sink.Augment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s<%s", d.indent(), name)
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=%q", a.QName(), a.Value)
	}
	b.WriteByte('>')
	if aug.Synthesized {
		b.WriteString(" (synthesized)")
	}
	d.lines = append(d.lines, b.String())
	d.depth++
	return nil
}

func (d *dumpSink) EndElement(name, namespaceURI string, aug sink.Augment) error {
	if d.depth > 0 {
		d.depth--
	}
	d.lines = append(d.lines, fmt.Sprintf("%s</%s>", d.indent(), name))
	return nil
}

func (d *dumpSink) Characters(data string, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s#text %q", d.indent(), data))
	return nil
}

func (d *dumpSink) Comment(data string, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s<!--%s-->", d.indent(), data))
	return nil
}

func (d *dumpSink) ProcessingInstruction(target, data string, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s<?%s %s?>", d.indent(), target, data))
	return nil
}

func (d *dumpSink) StartCDATA(aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s<![CDATA[", d.indent()))
	return nil
}

func (d *dumpSink) EndCDATA(aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s]]>", d.indent()))
	return nil
}

func (d *dumpSink) StartGeneralEntity(name string, aug sink.Augment) error {
	d.lines = append(d.lines, fmt.Sprintf("%s&%s;", d.indent(), name))
	return nil
}

func (d *dumpSink) EndGeneralEntity(aug sink.Augment) error {
	return nil
}

func (d *dumpSink) EndDocument(aug sink.Augment) error {
	d.lines = append(d.lines, "EndDocument")
	return nil
}

var _ sink.Sink = (*dumpSink)(nil)
