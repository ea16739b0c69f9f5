package renderer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/schollz/progressbar/v3"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/term"
)

// RecordOptions configures an offscreen recording.
type RecordOptions struct {
	Duration   float64 // seconds
	FPS        int
	OutputFile string
	FFMPEGPath string
	Codec      string // defaults to libx264
}

// FrameCount is the number of frames needed to cover Duration at FPS.
func (o RecordOptions) FrameCount() int {
	return int(math.Ceil(o.Duration * float64(o.FPS)))
}

func (o RecordOptions) validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", o.FPS)
	}
	if o.Duration <= 0 {
		return fmt.Errorf("invalid duration %v", o.Duration)
	}
	if o.OutputFile == "" {
		return errors.New("no output file")
	}
	return nil
}

// OffscreenTarget is a color framebuffer the scene is rendered into for readback.
type OffscreenTarget struct {
	fbo    uint32
	rbo    uint32
	width  int
	height int
}

func NewOffscreenTarget(width, height int) (*OffscreenTarget, error) {
	t := &OffscreenTarget{width: width, height: height}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.GenRenderbuffers(1, &t.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.rbo)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%04X", status)
	}
	return t, nil
}

func (t *OffscreenTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

func (t *OffscreenTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels copies the target into buf as bottom-up RGBA rows.
func (t *OffscreenTarget) ReadPixels(buf []byte) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	ReadPixels(0, 0, t.width, t.height, buf)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

func (t *OffscreenTarget) FrameSize() int {
	return t.width * t.height * 4
}

func (t *OffscreenTarget) Destroy() {
	if t.rbo != 0 {
		gl.DeleteRenderbuffers(1, &t.rbo)
		t.rbo = 0
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
}

// ReadPixels reads an RGBA8 rectangle from the current read framebuffer.
func ReadPixels(x, y, width, height int, buf []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&buf[0]))
}

func encoderArgs(opts RecordOptions, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": opts.FPS,
	}
	codec := opts.Codec
	if codec == "" {
		codec = "libx264"
	}
	outputArgs = ffmpeg.KwArgs{
		// glReadPixels rows are bottom-up
		"vf":      "vflip",
		"c:v":     codec,
		"pix_fmt": "yuv420p",
	}
	return
}

// Record renders a fixed number of frames offscreen at the scene size and
// pipes them to ffmpeg. Closing the context stops the recording early.
func (r *Renderer) Record(opts RecordOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	width, height := r.scene.Window.Width, r.scene.Window.Height

	target, err := NewOffscreenTarget(width, height)
	if err != nil {
		return err
	}
	defer target.Destroy()

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(opts, width, height)
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock the writer if ffmpeg exits early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	total := opts.FrameCount()
	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stdout.Fd())) {
		bar = progressbar.Default(int64(total), "recording")
	}

	log.Printf("Recording %d frames at %dx%d, %d fps to %s", total, width, height, opts.FPS, opts.OutputFile)
	start := time.Now()
	pixels := make([]byte, target.FrameSize())
	var renderErr error
	frame := 0
	for ; frame < total && !r.context.ShouldClose(); frame++ {
		target.Bind()
		if renderErr = r.RenderFrame(); renderErr != nil {
			target.Unbind()
			break
		}
		target.ReadPixels(pixels)
		target.Unbind()

		if _, err := pipeWriter.Write(pixels); err != nil {
			renderErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame, err)
			break
		}
		if bar != nil {
			bar.Add(1)
		}
		// keep the window responsive
		r.context.EndFrame()
	}
	pipeWriter.Close()
	if bar != nil {
		bar.Finish()
	}

	encodeErr := <-errc
	gl.Viewport(0, 0, int32(r.width), int32(r.height))

	if renderErr != nil {
		if encodeErr != nil {
			return fmt.Errorf("%w (ffmpeg: %v)", renderErr, encodeErr)
		}
		return renderErr
	}
	if encodeErr != nil {
		return fmt.Errorf("ffmpeg failed: %w", encodeErr)
	}
	log.Printf("Recorded %d frames in %v", frame, time.Since(start).Round(time.Millisecond))
	return nil
}
