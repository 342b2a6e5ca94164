// Package media resolves brand assets and watermarks result screenshots.
package media

import (
	"path/filepath"
	"strings"

	"github.com/signal-desk/halskey/internal/session"
)

// assetByPost maps template post names to brand images under the media dir.
var assetByPost = map[string]string{
	"gen_info_night":   "gen_info_night.jpg",
	"gen_info_morning": "gen_info_morning.jpg",
	"gen_info_noon":    "gen_info_noon.jpg",
	"session_end":      "session_end.jpg",
}

// assetByBand maps session bands to the signal announcement backdrop.
var assetByBand = map[session.Band]string{
	session.BandOvernight: "gen_info_night.jpg",
	session.BandMorning:   "gen_info_morning.jpg",
	session.BandAfternoon: "gen_info_noon.jpg",
}

// InstructionsVideo is the clip attached to posts declared as video.
const InstructionsVideo = "instructions.mp4"

// Assets resolves asset names to absolute paths inside the media directory.
type Assets struct {
	dir string
}

func NewAssets(dir string) *Assets {
	return &Assets{dir: dir}
}

// ForPost returns the image path for a template post name. Any name
// containing "get_ready" resolves to the shared countdown image.
func (a *Assets) ForPost(name string) (string, bool) {
	if strings.Contains(name, "get_ready") {
		return filepath.Join(a.dir, "get_ready.jpg"), true
	}

	file, ok := assetByPost[name]
	if !ok {
		return "", false
	}

	return filepath.Join(a.dir, file), true
}

// ForBand returns the announcement backdrop for a session band.
func (a *Assets) ForBand(band session.Band) (string, bool) {
	file, ok := assetByBand[band]
	if !ok {
		return "", false
	}

	return filepath.Join(a.dir, file), true
}

// Video returns the path of the instructions clip.
func (a *Assets) Video() string {
	return filepath.Join(a.dir, InstructionsVideo)
}
