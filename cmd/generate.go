package cmd

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/imagegen"
	"github.com/ziadkadry99/avatar-launch/internal/progress"
	"github.com/ziadkadry99/avatar-launch/internal/studio"
)

var generateCmd = &cobra.Command{
	Use:   "generate [PROMPT...]",
	Short: "Generate images from text prompts",
	Long: `Sends each prompt to the configured image provider and writes the
resulting PNG files. Prompts come from the arguments and, with --file, from a
text file with one prompt per line. Every attempt is added to the generation log.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("out", ".", "directory to write images to")
	generateCmd.Flags().String("file", "", "text file with one prompt per line")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	outDir, _ := cmd.Flags().GetString("out")
	promptFile, _ := cmd.Flags().GetString("file")

	prompts := append([]string(nil), args...)
	if promptFile != "" {
		fromFile, err := readPrompts(promptFile)
		if err != nil {
			return err
		}
		prompts = append(prompts, fromFile...)
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompts given: pass them as arguments or with --file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := createGeneratorFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating image generator: %w", err)
	}
	database, store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", gen.Name(), gen.Model())
		fmt.Fprintf(os.Stderr, "Output: %s\n", outDir)
	}

	st := studio.New(gen, store)
	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(len(prompts))

	var failed int
	for i, p := range prompts {
		name := fmt.Sprintf("image-%03d.png", i+1)
		if err := generateOne(ctx, st, p, filepath.Join(outDir, name)); err != nil {
			failed++
			var genErr *imagegen.GenerationError
			if errors.As(err, &genErr) {
				fmt.Fprintf(os.Stderr, "Error: %s\n", genErr.Message)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		} else if verbose {
			fmt.Fprintf(os.Stderr, "%s <- %q\n", name, p)
		}
		reporter.Update(i+1, name)
	}
	reporter.Finish()

	fmt.Fprintf(os.Stderr, "Generated %d of %d image(s) in %s\n",
		len(prompts)-failed, len(prompts), time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d generation(s) failed", failed)
	}
	return nil
}

// generateOne renders prompt and writes the decoded image to path.
func generateOne(ctx context.Context, st *studio.Studio, prompt, path string) error {
	res, err := st.Generate(ctx, prompt, history.SourceCLI)
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(res.Image)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// readPrompts returns the non-blank lines of path. Lines starting with # are
// comments.
func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening prompt file: %w", err)
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading prompt file: %w", err)
	}
	return prompts, nil
}
