package mp4source

import (
	"errors"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

func videoFile(timescale uint32, duration uint64, width, height int) *mp4.File {
	return &mp4.File{
		Moov: &mp4.MoovBox{
			Mvhd: &mp4.MvhdBox{Timescale: 1000, Duration: duration},
			Traks: []*mp4.TrakBox{
				{
					Tkhd: &mp4.TkhdBox{
						Width:  mp4.Fixed32(uint32(width) << 16),
						Height: mp4.Fixed32(uint32(height) << 16),
					},
					Mdia: &mp4.MdiaBox{
						Hdlr: &mp4.HdlrBox{HandlerType: "vide"},
						Mdhd: &mp4.MdhdBox{Timescale: timescale, Duration: duration},
					},
				},
			},
		},
	}
}

func TestProbeMetadata(t *testing.T) {
	// 90s track at timescale 600
	duration, width, height, err := probeMetadata(videoFile(600, 54000, 1280, 720))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if duration != 90 {
		t.Errorf("duration = %v, want 90", duration)
	}
	if width != 1280 || height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", width, height)
	}
}

func TestProbeMetadata_NoVideoTrack(t *testing.T) {
	f := &mp4.File{
		Moov: &mp4.MoovBox{
			Mvhd: &mp4.MvhdBox{Timescale: 1000, Duration: 5000},
		},
	}
	if _, _, _, err := probeMetadata(f); err == nil {
		t.Error("expected error for file without video track")
	}
}

func TestProbeMetadata_NoMoov(t *testing.T) {
	if _, _, _, err := probeMetadata(&mp4.File{}); err == nil {
		t.Error("expected error for file without moov box")
	}
}

func TestSource_MethodsBeforeOpen(t *testing.T) {
	s := New("/tmp/missing.mp4", Options{})

	if _, err := s.Duration(); err == nil {
		t.Error("Duration before Open should fail")
	}
	if err := s.Seek(5.0); err == nil {
		t.Error("Seek before Open should fail")
	}
	if _, err := s.Frame(); err == nil {
		t.Error("Frame before Open should fail")
	}

	state, err := s.ReadyState()
	if err != nil {
		t.Fatalf("ready state: %v", err)
	}
	if state != 0 {
		t.Errorf("ready state before Open = %v, want nothing", state)
	}
}

func TestFindFFmpeg_ExplicitMissing(t *testing.T) {
	_, err := findFFmpeg("/definitely/not/a/real/ffmpeg")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}
