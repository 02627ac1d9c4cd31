// Command graphrender reads an attributed graph (C7), evaluates
// attributes and materialises, solves placement, and assembles the
// scene (C3-C6), emits an SVG document (C8), and optionally runs the
// post-render structural checks (C12).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/svgraph/pkg/loader"
	"github.com/dshills/svgraph/pkg/render"
	"github.com/dshills/svgraph/pkg/scene"
	"github.com/dshills/svgraph/pkg/svgexport"
	"github.com/dshills/svgraph/pkg/validation"
)

const version = "1.0.0"

var (
	graphPath  = flag.String("graph", "", "Path to YAML graph file (required)")
	configPath = flag.String("config", "", "Path to YAML renderer config file (optional, defaults used if omitted)")
	outputDir  = flag.String("output", ".", "Output directory for the generated file")
	format     = flag.String("format", "svg", "Output format: svg or json (json dumps the assembled scene tree)")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	doValidate = flag.Bool("validate", false, "Run post-render structural checks and print the report")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("graphrender version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *graphPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -graph flag is required")
		printUsage()
		os.Exit(1)
	}

	if *format != "svg" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: svg, json\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *verbose {
		fmt.Printf("Loading graph from %s\n", *graphPath)
	}
	g, err := loader.LoadGraph(*graphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	cfg := render.DefaultConfig()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading config from %s\n", *configPath)
		}
		cfg, err = render.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed from %d to %d\n", cfg.Seed, *seedFlag)
		}
		cfg.Seed = *seedFlag
	} else if cfg.Seed == 0 {
		cfg.Seed = g.Seed
	}
	if heads, ok := g.Metadata[loader.ListHeadsKey].([]string); ok {
		cfg.ListAttributes = append(cfg.ListAttributes, heads...)
	}

	logger := render.Logger(render.Discard)
	if *verbose {
		logger = render.Stderr
		fmt.Printf("Using seed: %d\n", cfg.Seed)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Println("Assembling scene...")
	}
	assembler := scene.New(g, cfg, logger)
	root, err := assembler.Assemble()
	if err != nil {
		return fmt.Errorf("scene assembly failed: %w", err)
	}
	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Assembly completed in %v\n", elapsed)
	}

	baseName := fmt.Sprintf("graph_%d", cfg.Seed)
	outPath := filepath.Join(*outputDir, baseName+"."+*format)
	if *verbose {
		fmt.Printf("Writing %s to %s\n", *format, outPath)
	}
	switch *format {
	case "json":
		if err := svgexport.SaveJSONToFile(root, outPath); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	default:
		if err := svgexport.SaveToFile(root, cfg, outPath); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}
	}

	if *doValidate {
		results := validation.RunAll(g, root,
			cfg.Canvas.DefaultX, cfg.Canvas.DefaultY,
			cfg.Canvas.DefaultX+cfg.Canvas.DefaultWidth, cfg.Canvas.DefaultY+cfg.Canvas.DefaultHeight)
		printValidation(results)
	}

	fmt.Printf("Successfully rendered graph (seed=%d) in %v -> %s\n", cfg.Seed, elapsed, outPath)
	return nil
}

func printValidation(results []validation.ConstraintResult) {
	fmt.Println("\nValidation:")
	passed := true
	for _, r := range results {
		status := "PASS"
		if !r.Satisfied {
			status = "FAIL"
			passed = false
		}
		fmt.Printf("  [%s] %s: %s\n", status, r.Constraint, r.Details)
	}
	if passed {
		fmt.Println("All structural checks passed")
	} else {
		fmt.Println("One or more structural checks failed")
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: graphrender -graph <graph.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'graphrender -help' for detailed help")
}

func printHelp() {
	fmt.Printf("graphrender version %s\n\n", version)
	fmt.Println("Renders an attributed graph to an SVG drawing.")
	fmt.Println("\nUsage:")
	fmt.Println("  graphrender -graph <graph.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -graph string")
	fmt.Println("        Path to YAML graph file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML renderer config file (defaults used if omitted)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for the generated file (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Output format: svg or json (default: svg)")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config/graph seed)")
	fmt.Println("  -validate")
	fmt.Println("        Run post-render structural checks and print the report")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
}
