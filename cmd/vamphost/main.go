// Command vamphost is a small analysis host around the vamphost adapter:
// it lists registered plugins, dumps their descriptors, and runs a plugin
// over raw audio files, printing the collected features as JSON.
//
// Audio input is raw mono 32-bit little-endian float PCM (convert with
// e.g. `ffmpeg -i in.wav -f f32le -ac 1 out.raw`).
package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	vamphost "github.com/kelben/vamphost"
	"github.com/kelben/vamphost/host"
	"github.com/kelben/vamphost/plugins/example"
	"github.com/kelben/vamphost/realtime"
	"github.com/kelben/vamphost/transform"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool
	var log zerolog.Logger
	var registry *host.Registry

	root := &cobra.Command{
		Use:           "vamphost",
		Short:         "Run Vamp-style analysis plugins over audio buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			registry = host.NewRegistry(host.WithLogger(log))
			return example.Register(registry)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	var rate float64

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered plugin keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range registry.Keys() {
				snap, err := registry.Info(key, rate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", key, snap.Info["name"])
			}
			return nil
		},
	}
	listCmd.Flags().Float64Var(&rate, "rate", 44100, "sample rate used for introspection")

	infoCmd := &cobra.Command{
		Use:   "info <key>",
		Short: "Print a plugin's descriptors as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := registry.Info(args[0], rate)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
	infoCmd.Flags().Float64Var(&rate, "rate", 44100, "sample rate used for introspection")

	root.AddCommand(listCmd, infoCmd, newAnalyzeCommand(&registry, &log))
	return root
}

func newAnalyzeCommand(registry **host.Registry, log *zerolog.Logger) *cobra.Command {
	var (
		transformPath string
		pluginKey     string
		output        string
		stepSize      int
		blockSize     int
		rate          float64
		params        []string
		jobs          int
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Run a plugin over raw f32le mono PCM files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := buildTransform(transformPath, pluginKey, output, stepSize, blockSize, params)
			if err != nil {
				return err
			}

			// One handle per file; handles never cross goroutines.
			results := make([][]vamphost.FeatureMap, len(args))
			var g errgroup.Group
			g.SetLimit(jobs)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					samples, err := readRawFloats(path)
					if err != nil {
						return err
					}
					log.Debug().Str("file", path).Int("samples", len(samples)).Msg("read input")
					features, err := (*registry).Analyze([][]float32{samples}, rate, t)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = features
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for i, path := range args {
				for _, f := range results[i] {
					if err := enc.Encode(printableFeature(path, f)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&transformPath, "transform", "", "YAML transform file describing the run")
	cmd.Flags().StringVar(&pluginKey, "plugin", "", "plugin key (alternative to --transform)")
	cmd.Flags().StringVar(&output, "output", "", "output identifier (default: plugin's first output)")
	cmd.Flags().IntVar(&stepSize, "step", 0, "step size in samples (0 = plugin preference)")
	cmd.Flags().IntVar(&blockSize, "block", 0, "block size in samples (0 = plugin preference)")
	cmd.Flags().Float64Var(&rate, "rate", 44100, "input sample rate")
	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter setting id=value (repeatable)")
	cmd.Flags().IntVar(&jobs, "jobs", 4, "files analysed concurrently")
	return cmd
}

func buildTransform(path, pluginKey, output string, stepSize, blockSize int, params []string) (*transform.Transform, error) {
	if path != "" {
		if pluginKey != "" {
			return nil, fmt.Errorf("--transform and --plugin are mutually exclusive")
		}
		return transform.Load(path)
	}
	if pluginKey == "" {
		return nil, fmt.Errorf("either --transform or --plugin is required")
	}

	t := &transform.Transform{
		Plugin:    pluginKey,
		Output:    output,
		StepSize:  stepSize,
		BlockSize: blockSize,
	}
	for _, setting := range params {
		id, raw, found := strings.Cut(setting, "=")
		if !found || id == "" {
			return nil, fmt.Errorf("malformed --param %q, want id=value", setting)
		}
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed --param %q: %w", setting, err)
		}
		if t.Parameters == nil {
			t.Parameters = make(map[string]float32)
		}
		t.Parameters[id] = float32(value)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// readRawFloats loads a raw little-endian float32 mono PCM file.
func readRawFloats(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%s: size %d is not a whole number of f32 samples", path, len(data))
	}
	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}

// printableFeature flattens a feature map for JSON output, rendering
// timestamps and durations as second strings.
func printableFeature(file string, f vamphost.FeatureMap) map[string]any {
	out := map[string]any{"file": file}
	for key, value := range f {
		if rt, ok := value.(realtime.RealTime); ok {
			out[key] = rt.String()
			continue
		}
		out[key] = value
	}
	return out
}
