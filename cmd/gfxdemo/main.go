// Command gfxdemo opens a window and draws batched sprites, a recorded
// background picture, and a render-to-texture pass with gfx.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/gl/opengl"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

func main() {
	var (
		width    = flag.Int("width", 800, "window width")
		height   = flag.Int("height", 600, "window height")
		frames   = flag.Int("frames", 0, "number of frames to draw before exiting; 0 runs until the window is closed")
		output   = flag.String("output", "offscreen.png", "file the offscreen pass is exported to (.png, .bmp or .tiff)")
		picture  = flag.String("picture", "", "file the recorded background picture is saved to")
		logFile  = flag.String("log", "gfxdemo.slog", "log file")
		logLevel = flag.String("loglevel", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	logger := newLogger(*logFile, *logLevel)
	gfx.SetLogger(logger)

	if err := run(*width, *height, *frames, *output, *picture, logger); err != nil {
		logger.Error("gfxdemo failed", slog.Any("error", err))
		log.Fatal(err)
	}
}

// newLogger writes JSON records to a size-rotated file.
func newLogger(path, level string) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func run(width, height, frames int, output, picturePath string, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(width, height, "gfxdemo", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	funcs, err := opengl.New()
	if err != nil {
		return err
	}
	defer funcs.Release()

	fbw, fbh := window.GetFramebufferSize()
	var t float32
	camera := gfx.CameraFunc(func() mgl32.Mat4 {
		dx := 20 * float32(math.Sin(float64(t)))
		return mgl32.Translate3D(dx, 0, 0)
	})
	ctx, err := gfx.NewContext(funcs,
		gfx.WithViewport(image.Rect(0, 0, fbw, fbh)),
		gfx.WithCamera(camera))
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	prog, err := gfx.NewSpriteProgram(ctx)
	if err != nil {
		return err
	}
	white, err := gfx.NewTextureFromImage(ctx, solid(color.White), gfx.TextureOptions{Label: "white"})
	if err != nil {
		return err
	}
	r, err := gfx.NewBatchRenderer(ctx, gfx.DefaultFormat)
	if err != nil {
		return err
	}

	plain := gfx.Material{Shader: prog, Texture: white}
	background, err := recordBackground(r, plain, fbw, fbh)
	if err != nil {
		return err
	}
	if picturePath != "" {
		if err := savePicture(background, picturePath); err != nil {
			return err
		}
	}

	offscreen, err := renderOffscreen(ctx, r, plain)
	if err != nil {
		return err
	}
	if err := exportImage(offscreen, output); err != nil {
		return err
	}
	logger.Info("offscreen pass exported", slog.String("path", output))

	glow := gfx.Material{Shader: prog, Texture: white, Blend: gfx.BlendAdd}
	inset := gfx.Material{Shader: prog, Texture: offscreen.Texture(), Fixed: true}

	for n := 0; !window.ShouldClose() && (frames == 0 || n < frames); n++ {
		t = float32(glfw.GetTime())
		ctx.Clear(color.RGBA{R: 16, G: 16, B: 24, A: 255})

		if err := r.DrawPicture(background, fbw, fbh); err != nil {
			logger.Warn("background", slog.Any("error", err))
		}
		for i := range 64 {
			a := t + float32(i)*0.1
			x := float32(fbw)/2 + 200*float32(math.Cos(float64(a)))
			y := float32(fbh)/2 + 150*float32(math.Sin(float64(2*a)))
			v, idx := quad(x-8, y-8, 16, 16, [4]float32{0.2, 0.1, 0.05, 0.2})
			if err := r.Push(glow, v, idx, fbw, fbh); err != nil {
				logger.Warn("push", slog.Any("error", err))
			}
		}
		v, idx := quad(16, 16, 128, 128, [4]float32{1, 1, 1, 1})
		if err := r.Push(inset, v, idx, fbw, fbh); err != nil {
			logger.Warn("push", slog.Any("error", err))
		}
		if err := r.Flush(fbw, fbh); err != nil {
			logger.Warn("flush", slog.Any("error", err))
		}

		window.SwapBuffers()
		glfw.PollEvents()

		if n%600 == 0 {
			logger.Info("frame stats", slog.Int("frame", n), slog.Any("stats", r.Stats()))
			r.ResetStats()
		}
	}
	return nil
}

// recordBackground records a checkerboard once so later frames replay it
// without rebuilding the geometry.
func recordBackground(r *gfx.BatchRenderer, m gfx.Material, w, h int) (*gfx.Picture, error) {
	pic := gfx.NewPicture(gfx.DefaultFormat)
	if err := r.StartRecording(pic); err != nil {
		return nil, err
	}
	defer r.StopRecording()

	const cell = 32
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				continue
			}
			v, idx := quad(float32(x), float32(y), cell, cell, [4]float32{0.12, 0.12, 0.16, 1})
			if err := r.Push(m, v, idx, w, h); err != nil {
				return nil, err
			}
		}
	}
	return pic, nil
}

// renderOffscreen draws concentric squares into a framebuffer.
func renderOffscreen(ctx *gfx.Context, r *gfx.BatchRenderer, m gfx.Material) (*gfx.FrameBuffer, error) {
	fb, err := gfx.NewFrameBuffer(ctx, 256, 256, gfx.TextureOptions{Filter: gfx.FilterLinear, Label: "offscreen"})
	if err != nil {
		return nil, err
	}
	m.Fixed = true
	err = fb.Draw(func() error {
		ctx.Clear(color.Transparent)
		for i := range 8 {
			inset := float32(i * 16)
			c := float32(i) / 8
			v, idx := quad(inset, inset, 256-2*inset, 256-2*inset, [4]float32{c, 0.5 * c, 1 - c, 1})
			if err := r.Push(m, v, idx, fb.Width(), fb.Height()); err != nil {
				return err
			}
		}
		return r.Flush(fb.Width(), fb.Height())
	})
	return fb, err
}

func exportImage(fb *gfx.FrameBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.Export(f, gfx.FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func savePicture(pic *gfx.Picture, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pic.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	return img
}

// quad returns a rectangle in DefaultFormat with a premultiplied color.
func quad(x, y, w, h float32, c [4]float32) ([]float32, []uint16) {
	v := []float32{
		x, y, 0, 0, c[0], c[1], c[2], c[3],
		x + w, y, 1, 0, c[0], c[1], c[2], c[3],
		x + w, y + h, 1, 1, c[0], c[1], c[2], c[3],
		x, y + h, 0, 1, c[0], c[1], c[2], c[3],
	}
	return v, []uint16{0, 1, 2, 0, 2, 3}
}
