// Package htmlcore parses HTML the way a browser's forgiving front end
// does: encoding detection, tokenization, and tag balancing feeding a
// caller-supplied sink.Sink, instead of building a DOM of its own. Wires
// together charreader.Reader, scanner.Scanner, and balancer.Balancer.
package htmlcore

import (
	"errors"

	"github.com/MeKo-Christian/htmlcore/balancer"
	"github.com/MeKo-Christian/htmlcore/charreader"
	"github.com/MeKo-Christian/htmlcore/encoding"
	"github.com/MeKo-Christian/htmlcore/perr"
	"github.com/MeKo-Christian/htmlcore/scanner"
	"github.com/MeKo-Christian/htmlcore/sink"
)

// Parse decodes html as text, tokenizes, and balances it, pushing the
// resulting event stream into out.
func Parse(html string, out sink.Sink, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}
	return run(html, out, cfg)
}

// ParseBytes decodes data per the encoding-resolution chain before parsing:
// a byte-order mark, then the label set by WithEncoding/WithDefaultEncoding,
// then a <meta> charset declaration, then windows-1252.
func ParseBytes(data []byte, out sink.Sink, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}
	hint := cfg.defaultEncoding
	text, _, decErr := encoding.Decode(data, hint)
	if decErr != nil {
		if errors.Is(decErr, encoding.ErrReplacementEncoding) {
			// The document declared the "replacement" sentinel encoding.
			// Browsers refuse to decode it: abort with a single fatalError
			// and run the pipeline over one substituted U+FFFD character
			// instead of the original bytes, so the sink still sees a
			// well-formed implied-structure-plus-EOF event sequence.
			return runFatal("�", out, cfg, "replacement-encoding",
				"document declared the replacement encoding")
		}
		return decErr
	}
	return run(text, out, cfg)
}

// ParseFragment parses html as the children of an element named context,
// per the fragment-parsing algorithm.
func ParseFragment(html, context string, out sink.Sink, opts ...Option) error {
	return ParseFragmentNS(html, context, "", out, opts...)
}

// ParseFragmentNS is ParseFragment for a foreign-content context element,
// namespace being "svg" or "mathml".
func ParseFragmentNS(html, context, namespace string, out sink.Sink, opts ...Option) error {
	opts = append(opts, WithFragmentNS(context, namespace))
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}
	return run(html, out, cfg)
}

func run(text string, out sink.Sink, cfg *config) error {
	return runWithReporter(text, out, cfg, cfg.reporter())
}

// runFatal reports a fatal anomaly through a fresh reporter before running
// the pipeline over text, used when the encoding layer aborts before any
// tokenization has happened.
func runFatal(text string, out sink.Sink, cfg *config, code, message string) error {
	rep := cfg.reporter()
	perr.NewFatal(rep, code, message)
	return runWithReporter(text, out, cfg, rep)
}

func runWithReporter(text string, out sink.Sink, cfg *config, rep perr.Reporter) error {
	reader := charreader.New(text)
	scan := scanner.New(reader, rep, scanner.Options{
		AllowProcessingInstructions: cfg.processingInstructions,
		AllowCDATA: true,
		XMLCoercion: cfg.xmlCoercion,
	})

	balOpts := balancer.Options{
		NamespaceAware: cfg.namespaces,
		IframeSrcdoc: cfg.iframeSrcdoc,
		ProcessingInstructions: cfg.processingInstructions,
		ReopenDepthLimit: cfg.reopenDepthLimit,
	}

	wrapped := newPolicySink(out, cfg)

	var bal *balancer.Balancer
	if cfg.fragmentContext != nil {
		bal = balancer.NewFragment(scan, wrapped, rep, balOpts, *cfg.fragmentContext)
	} else {
		bal = balancer.New(scan, wrapped, rep, balOpts)
	}

	runErr := bal.Run()

	if collector, ok := rep.(*perr.CollectingReporter); ok {
		errs := collector.Errors()
		if cfg.strict && len(errs) > 0 {
			if runErr != nil {
				return runErr
			}
			return errs[0]
		}
		if cfg.collectErrors && len(errs) > 0 {
			if runErr != nil {
				return runErr
			}
			return errs
		}
	}

	return runErr
}
