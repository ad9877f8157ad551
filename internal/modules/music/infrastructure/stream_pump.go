package infrastructure

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const (
	audioChannels   = 2
	audioSampleRate = 48000
	audioFrameSize  = 960 // 20ms at 48kHz
)

// streamPump transcodes a remote audio stream to Opus frames and feeds
// them into a voice connection until the stream ends or stop is called.
type streamPump struct {
	cmd      *exec.Cmd
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
	runErr   error
}

// startStreamPump spawns ffmpeg against streamURL and begins pumping
// encoded frames into vc on a background goroutine.
func startStreamPump(
	ffmpegPath, streamURL string, vc *discordgo.VoiceConnection,
) (*streamPump, error) {
	cmd := exec.Command(ffmpegPath,
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", streamURL,
		"-f", "s16le",
		"-ar", strconv.Itoa(audioSampleRate),
		"-ac", strconv.Itoa(audioChannels),
		"-loglevel", "warning",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open transcoder stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start transcoder: %w", err)
	}

	pump := &streamPump{
		cmd:    cmd,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go func() {
		pump.runErr = pump.run(stdout, vc)
		close(pump.doneCh)
	}()

	return pump, nil
}

func (p *streamPump) run(stdout io.Reader, vc *discordgo.VoiceConnection) error {
	defer func() {
		p.cmd.Process.Kill()
		p.cmd.Wait()
	}()

	encoder, err := gopus.NewEncoder(audioSampleRate, audioChannels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("failed to create opus encoder: %w", err)
	}

	if err := vc.Speaking(true); err != nil {
		return fmt.Errorf("failed to set speaking state: %w", err)
	}
	defer vc.Speaking(false)

	pcmBuf := make([]byte, audioFrameSize*audioChannels*2)
	sampleBuf := make([]int16, audioFrameSize*audioChannels)

	for {
		select {
		case <-p.stopCh:
			return nil
		default:
		}

		if _, err := io.ReadFull(stdout, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("failed to read pcm frame: %w", err)
		}

		for i := range sampleBuf {
			sampleBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		frame, err := encoder.Encode(sampleBuf, audioFrameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("failed to encode opus frame: %w", err)
		}

		select {
		case <-p.stopCh:
			return nil
		case vc.OpusSend <- frame:
		}
	}
}

// stop signals the pump to halt and waits for the goroutine to exit.
func (p *streamPump) stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		p.cmd.Process.Kill()
	})
	<-p.doneCh
}

// wait blocks until the pump finishes on its own or is stopped.
func (p *streamPump) wait() error {
	<-p.doneCh
	return p.runErr
}
