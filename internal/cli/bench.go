package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	frames      int
	lines       int
	retained    float64
	maxDuration float64
	shapeEvery  int
	fps         float64
	seed        uint64
	quiet       bool
}

func init() {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run frame updates with random lines and print statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 600, "Number of frames")
	cmd.Flags().IntVarP(&opts.lines, "lines", "l", 1000, "Lines submitted per frame")
	cmd.Flags().Float64Var(&opts.retained, "retained", 0.1, "Fraction of lines with a duration")
	cmd.Flags().Float64Var(&opts.maxDuration, "max-duration", 2, "Longest retained duration in seconds")
	cmd.Flags().IntVar(&opts.shapeEvery, "shape-every", 10, "Submit a batch of shapes every N frames (0 disables)")
	cmd.Flags().Float64Var(&opts.fps, "fps", 60, "Simulated frame rate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Hide the progress bar")

	RootCmd.AddCommand(cmd)
}

func runBench(cmd *cobra.Command, opts benchOptions) error {
	if opts.frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", opts.fps)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lines, err := debuglines.New(debuglines.WithConfig(cfg))
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	dt := float32(1 / opts.fps)

	pb := progressbar.NewOptions(opts.frames,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionSetVisibility(!opts.quiet),
		progressbar.OptionClearOnFinish())
	defer pb.Close()

	var (
		elapsed time.Duration
		peak    debuglines.Stats
		dropped int
	)
	for frame := range opts.frames {
		for range opts.lines {
			var duration float32
			if rng.Float64() < opts.retained {
				duration = float32(rng.Float64()*opts.maxDuration) + dt
			}
			lines.LineGradient(randomPoint(rng), randomPoint(rng), duration, randomColor(rng), randomColor(rng))
		}
		if opts.shapeEvery > 0 && frame%opts.shapeEvery == 0 {
			submitShapes(lines, rng, float32(opts.maxDuration))
		}

		start := time.Now()
		lines.Update(float32(frame+1) * dt)
		elapsed += time.Since(start)

		s := lines.Stats()
		dropped += s.Dropped
		if s.Visible > peak.Visible {
			peak = s
		}
		_ = pb.Add(1)
	}
	_ = pb.Finish()

	last := lines.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frames:       %d\n", last.Frame)
	fmt.Fprintf(out, "max lines:    %d per store\n", lines.MaxLines())
	fmt.Fprintf(out, "update total: %v\n", elapsed)
	fmt.Fprintf(out, "update avg:   %v\n", elapsed/time.Duration(opts.frames))
	fmt.Fprintf(out, "immediate:    %d\n", last.Immediate)
	fmt.Fprintf(out, "retained:     %d (%d visible, %d free)\n", last.Retained, last.Visible, last.FreeSlots)
	fmt.Fprintf(out, "peak visible: %d (frame %d)\n", peak.Visible, peak.Frame)
	fmt.Fprintf(out, "dropped:      %d\n", dropped)
	return nil
}

func submitShapes(lines *debuglines.Lines, rng *rand.Rand, maxDuration float32) {
	d := rng.Float32() * maxDuration
	lines.Rect(randomPoint(rng), mgl32.Vec2{rng.Float32() * 2, rng.Float32() * 2}).
		Angle(rng.Float32() * 2 * float32(math.Pi)).
		Color(randomColor(rng)).
		Duration(d)
	lines.Cuboid(randomPoint(rng), mgl32.Vec3{1, 1, 1}).
		Rotation(mgl32.QuatRotate(rng.Float32()*float32(math.Pi), mgl32.Vec3{0, 1, 0})).
		Color(randomColor(rng)).
		Duration(d)
	lines.Sphere().
		Position(randomPoint(rng)).
		Radius(0.5 + rng.Float32()).
		Color(randomColor(rng)).
		Duration(d)
}

func randomPoint(rng *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		rng.Float32()*20 - 10,
		rng.Float32()*20 - 10,
		rng.Float32()*20 - 10,
	}
}

func randomColor(rng *rand.Rand) debuglines.Color {
	return debuglines.RGB(rng.Float32(), rng.Float32(), rng.Float32())
}
