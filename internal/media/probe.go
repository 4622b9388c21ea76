package media

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober returns the duration of a media file in seconds
type Prober func(localPath string) (float64, error)

// FFProbe reads the container duration with ffprobe
func FFProbe(localPath string) (float64, error) {
	out, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	return parseDuration(out)
}

func parseDuration(probeJSON string) (float64, error) {
	var report struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &report); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	if report.Format.Duration == "" {
		return 0, errors.New("ffprobe output has no duration")
	}
	d, err := strconv.ParseFloat(report.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse duration")
	}
	return d, nil
}
