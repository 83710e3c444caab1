package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kavac/pkg/compiler"
)

var showTokens bool

var rootCmd = &cobra.Command{
	Use:   "kavac <file.kava>",
	Short: "Compiler for the Kava language",
	Long: `kavac translates a Kava source file into x86-64 assembly text.

The output is written next to the input with the extension replaced by
.s; assembling and linking it (against a C runtime providing printf) is
left to the system toolchain.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVar(&showTokens, "tokens", false, "print the classified token listing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		// I/O failures are reported apart from compilation errors.
		return fmt.Errorf("cannot read input: %w", err)
	}

	asmPath := outputPath(inPath)
	exePath := strings.TrimSuffix(asmPath, ".s")

	fmt.Println("[1] scan: reading source...")
	tokens, err := compiler.Scan(string(data))
	if err != nil {
		return compileFailure(err)
	}
	fmt.Printf("    - %d tokens\n", len(tokens))

	fmt.Println("[2] classify: categorising tokens...")
	if err := compiler.Classify(tokens); err != nil {
		return compileFailure(err)
	}
	if showTokens {
		for _, tok := range tokens {
			fmt.Println("   ", tok)
		}
	}

	fmt.Println("[3] analyze: resolving declarations...")
	an, err := compiler.Analyze(tokens)
	if err != nil {
		return compileFailure(err)
	}
	fmt.Print(indent(an.Syms.String()))
	fmt.Print(indent(an.Strings.String()))
	fmt.Printf("    - reserved frame size: %d bytes\n", an.FrameSize)

	fmt.Println("[4] generate: emitting assembly...")
	asmText, err := compiler.Generate(tokens, an)
	if err != nil {
		return compileFailure(err)
	}

	if err := os.WriteFile(asmPath, []byte(asmText), 0o644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	fmt.Println("\ncompilation successful")
	fmt.Printf("  assembly written to %s\n", asmPath)
	fmt.Println("\nto produce an executable, run:")
	fmt.Printf("  gcc -o %s %s\n", exePath, asmPath)
	return nil
}

// outputPath derives the assembly path from the input path by swapping
// the .kava extension for .s.
func outputPath(inPath string) string {
	return strings.TrimSuffix(inPath, ".kava") + ".s"
}

func compileFailure(err error) error {
	return fmt.Errorf("compilation failed: %w", err)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
