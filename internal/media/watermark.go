package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/signal-desk/halskey/internal/errors"
)

const defaultWatermarkService = "https://quickchart.io/watermark"

// Watermarker composites the channel watermark onto result screenshots via
// the quickchart watermark endpoint and saves the output locally.
type Watermarker struct {
	client     *http.Client
	serviceURL string
	markURL    string
	dir        string
	log        *slog.Logger
}

func NewWatermarker(dir, markURL string, log *slog.Logger) *Watermarker {
	if log == nil {
		log = slog.Default()
	}

	return &Watermarker{
		client:     &http.Client{Timeout: 30 * time.Second},
		serviceURL: defaultWatermarkService,
		markURL:    markURL,
		dir:        dir,
		log:        log,
	}
}

// Apply downloads the watermarked version of the image at imageURL and
// writes it to the media directory. It returns the saved file path.
func (w *Watermarker) Apply(ctx context.Context, imageURL string) (string, error) {
	if w.markURL == "" {
		return "", apperrors.NewMediaError("watermark", fmt.Errorf("watermark url not configured"))
	}

	query := url.Values{}
	query.Set("mainImageUrl", imageURL)
	query.Set("markImageUrl", w.markURL)
	query.Set("markRatio", "0.6")
	query.Set("position", "center")
	query.Set("opacity", "0.65")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.serviceURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build watermark request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", apperrors.NewMediaError("watermark", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewMediaError("watermark", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	path := filepath.Join(w.dir, uuid.NewString()+".png")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create watermarked file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("save watermarked image: %w", err)
	}

	w.log.Debug("watermarked image saved", slog.String("path", path))

	return path, nil
}
