package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrmosaic/pkg/config"
	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/pipeline"
	"github.com/matzehuels/qrmosaic/pkg/render/assets"
	"github.com/matzehuels/qrmosaic/pkg/render/sink"
)

// minScanBorder is the quiet zone width QR readers expect.
const minScanBorder = 4

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	styleFlags

	output  string // output file, or base path for several formats
	formats string // comma-separated output formats
	quality int    // JPEG quality
	verify  bool   // decode the render and compare payloads
	noCache bool   // skip the artifact cache
	refresh bool   // re-render and overwrite cached artifacts
	quiet   bool   // show a spinner instead of stage logs
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <payload>",
		Short: "Render a payload as a styled QR image",
		Long: `Render a payload as a styled QR image.

The flat style fills every sub-cell with the dark or light color. The glyph
style draws one character of --text per sub-cell. The image style pastes a
tile per sub-cell, either --on/--off images or a --base image tinted dark and
light.`,
		Example: `  qrmosaic render https://hole.cd -o hole.png
  qrmosaic render https://hole.cd --text HOLE --shift 2 --ppc 30
  qrmosaic render https://hole.cd --base tile.png --on-tint '#000000:0.8'
  qrmosaic render https://hole.cd -c styles/glyph.toml -f png,jpeg --verify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := opts.resolve(cmd, c.Fs)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], file, &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), jpeg, bmp, tiff, json (comma-separated)")
	cmd.Flags().IntVar(&opts.quality, "quality", sink.DefaultJPEGQuality, "JPEG quality (1-100)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "decode the rendered image and check the payload")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide stage logs and show a spinner")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, payload string, file config.File, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	formats := parseFormats(opts.formats)
	if len(formats) == 0 && opts.output != "" {
		if f, err := sink.FormatFromPath(opts.output); err == nil {
			formats = []string{f}
		}
	}

	loader := c.assetLoader(opts.configPath)
	strategy, err := file.Strategy(loader)
	if err != nil {
		return err
	}
	popts, err := pipelineOptions(payload, file, loader)
	if err != nil {
		return err
	}
	popts.Formats = formats
	popts.Quality = opts.quality
	popts.Verify = opts.verify
	popts.Refresh = opts.refresh
	popts.Logger = logger

	if src := popts.Source; opts.verify && src.Border < minScanBorder {
		printWarning("Quiet zone of %d module(s) is below %d; verification may fail", src.Border, minScanBorder)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if opts.quiet {
		popts.Logger = logger.With()
		popts.Logger.SetLevel(log.WarnLevel)
		spin = newSpinnerWithContext(ctx, "Rendering "+strategy.Name()+" code...")
		spin.Start()
	} else {
		logger.Info("rendering", "style", strategy.Name(), "ppc", file.PixelsPerCell, "sub", file.SubCells)
	}
	result, err := runner.Execute(ctx, popts, strategy)
	if spin != nil {
		if err != nil {
			spin.StopWithError(errors.UserMessage(err))
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, formatsOf(result))
	written := make([]string, 0, len(paths))
	for format, path := range paths {
		if err := sink.WriteFile(c.Fs, path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}
	sort.Strings(written)

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(written)))
	printSuccess("Rendered %s", StyleHighlight.Render(payload))
	printKeyValue("Style", strategy.Name())
	for _, p := range written {
		printFile(p)
	}
	printStats(result.Stats.Modules, result.Stats.Cells, result.CacheHit)
	if result.Stats.Verified {
		printInfo("Verified: render decodes to the payload")
	}
	return nil
}

// assetLoader resolves relative asset paths against the config file's
// directory, or the working directory when no config file is used.
func (c *CLI) assetLoader(configPath string) *assets.Loader {
	root := ""
	if configPath != "" {
		root = filepath.Dir(configPath)
	}
	return assets.NewLoader(c.Fs, root)
}

// pipelineOptions translates a resolved config file into pipeline options.
// Assets are fingerprinted through loader so cached artifacts follow the
// files the strategy was built from.
func pipelineOptions(payload string, file config.File, loader *assets.Loader) (pipeline.Options, error) {
	src, err := file.Source()
	if err != nil {
		return pipeline.Options{}, err
	}
	bg, err := file.BackgroundColor()
	if err != nil {
		return pipeline.Options{}, err
	}
	key, err := file.Key(loader)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Payload:    payload,
		Source:     src,
		Layout:     file.Layout(),
		Background: bg,
		StyleKey:   key,
	}, nil
}

func formatsOf(r *pipeline.Result) []string {
	formats := make([]string, 0, len(r.Artifacts))
	for f := range r.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
