package cli

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines"
	"github.com/gogpu/debuglines/preview"
	"github.com/spf13/cobra"
)

type previewOptions struct {
	output     string
	width      int
	height     int
	lineWidth  float64
	background string
	eye        []float32
}

func init() {
	var opts previewOptions
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a demo scene to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "debuglines.png", "Output file")
	cmd.Flags().IntVar(&opts.width, "width", 800, "Image width")
	cmd.Flags().IntVar(&opts.height, "height", 600, "Image height")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", 1.5, "Stroke width in pixels")
	cmd.Flags().StringVar(&opts.background, "background", "midnightblue", "Background color name or #rrggbb")
	cmd.Flags().Float32SliceVar(&opts.eye, "eye", []float32{4, 3, 6}, "Camera position x,y,z")

	RootCmd.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, opts previewOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}
	if len(opts.eye) != 3 {
		return fmt.Errorf("eye needs 3 components, got %d", len(opts.eye))
	}
	bg, err := debuglines.ParseColor(opts.background)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lines, err := debuglines.New(debuglines.WithConfig(cfg))
	if err != nil {
		return err
	}
	// The scene must be drawable regardless of the configured flag.
	lines.SetEnabled(true)
	demoScene(lines)
	lines.Update(0)

	cam := preview.DefaultCamera()
	cam.Eye = mgl32.Vec3{opts.eye[0], opts.eye[1], opts.eye[2]}
	res, err := preview.SavePNG(lines, preview.Options{
		Width:      opts.width,
		Height:     opts.height,
		Background: bg,
		LineWidth:  opts.lineWidth,
		ViewProj:   cam.ViewProj(float32(opts.width) / float32(opts.height)),
	}, opts.output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d lines, %d culled)\n",
		opts.output, opts.width, opts.height, res.Drawn, res.Culled)
	return nil
}

// demoScene submits axes, a ground grid and one of each shape.
func demoScene(lines *debuglines.Lines) {
	const grid = 5
	for i := -grid; i <= grid; i++ {
		f := float32(i)
		lines.LineColored(mgl32.Vec3{f, 0, -grid}, mgl32.Vec3{f, 0, grid}, 1, debuglines.Gray)
		lines.LineColored(mgl32.Vec3{-grid, 0, f}, mgl32.Vec3{grid, 0, f}, 1, debuglines.Gray)
	}

	lines.LineGradient(mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}, 0, debuglines.White, debuglines.Red)
	lines.LineGradient(mgl32.Vec3{}, mgl32.Vec3{0, 2, 0}, 0, debuglines.White, debuglines.Green)
	lines.LineGradient(mgl32.Vec3{}, mgl32.Vec3{0, 0, 2}, 0, debuglines.White, debuglines.Blue)

	lines.Cuboid(mgl32.Vec3{-2, 0.5, 0}, mgl32.Vec3{1, 1, 1}).
		Rotation(mgl32.QuatRotate(float32(math.Pi)/6, mgl32.Vec3{0, 1, 0})).
		Color(debuglines.Cyan)
	lines.Sphere().
		Position(mgl32.Vec3{2, 1, 0}).
		Radius(1).
		Segments(24).
		Color(debuglines.Pink)
	lines.Rect(mgl32.Vec3{0, 0.01, 2.5}, mgl32.Vec2{1.5, 1}).
		Rotation(mgl32.QuatRotate(-float32(math.Pi)/2, mgl32.Vec3{1, 0, 0})).
		Color(debuglines.Gold)
	lines.Circle().
		Position(mgl32.Vec3{0, 0.01, 0}).
		Radius(3).
		Rotation(mgl32.QuatRotate(-float32(math.Pi)/2, mgl32.Vec3{1, 0, 0})).
		Color(debuglines.Orange)
	lines.LineShape(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}).
		DirLength(mgl32.Vec3{1, 1, 1}.Normalize(), 2.5).
		Gradient(debuglines.Yellow, debuglines.Fuchsia)
}
