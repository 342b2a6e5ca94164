package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/session"
)

func TestAssetsForPost(t *testing.T) {
	assets := NewAssets("/media")

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "gen_info_night", want: "/media/gen_info_night.jpg", ok: true},
		{name: "gen_info_morning", want: "/media/gen_info_morning.jpg", ok: true},
		{name: "session_end", want: "/media/session_end.jpg", ok: true},
		{name: "get_ready_morning", want: "/media/get_ready.jpg", ok: true},
		{name: "get_ready_overnight", want: "/media/get_ready.jpg", ok: true},
		{name: "unknown_post", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := assets.ForPost(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestAssetsForBand(t *testing.T) {
	assets := NewAssets("/media")

	got, ok := assets.ForBand(session.BandMorning)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/media", "gen_info_morning.jpg"), got)

	_, ok = assets.ForBand(session.BandOutside)
	assert.False(t, ok)
}

func TestWatermarkerApply(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	wm := NewWatermarker(dir, "https://example.com/mark.png", nil)
	wm.serviceURL = srv.URL

	path, err := wm.Apply(context.Background(), "https://api.telegram.org/file/photo.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Contains(t, gotQuery, "markRatio=0.6")
	assert.Contains(t, gotQuery, "opacity=0.65")
	assert.Contains(t, gotQuery, "position=center")
}

func TestWatermarkerApplyErrors(t *testing.T) {
	t.Run("missing mark url", func(t *testing.T) {
		wm := NewWatermarker(t.TempDir(), "", nil)
		_, err := wm.Apply(context.Background(), "https://example.com/photo.jpg")
		assert.Error(t, err)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		wm := NewWatermarker(t.TempDir(), "https://example.com/mark.png", nil)
		wm.serviceURL = srv.URL

		_, err := wm.Apply(context.Background(), "https://example.com/photo.jpg")
		assert.Error(t, err)
	})
}
