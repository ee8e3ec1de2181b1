package navigation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// AudioStore persists raw command audio for later diagnosis.
type AudioStore interface {
	// Save writes the audio payload and returns a reference path.
	Save(ctx context.Context, deviceID string, audio []byte, contentType string) (string, error)
}

// audioExtensions maps common upload content types to file extensions.
var audioExtensions = map[string]string{
	"audio/webm": ".webm",
	"audio/wav":  ".wav",
	"audio/wave": ".wav",
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
	"audio/ogg":  ".ogg",
	"audio/flac": ".flac",
}

// FilesystemAudioStore writes audio payloads to a local directory.
type FilesystemAudioStore struct {
	dir string
}

// NewFilesystemAudioStore creates an audio store rooted at dir.
func NewFilesystemAudioStore(dir string) *FilesystemAudioStore {
	return &FilesystemAudioStore{dir: dir}
}

// Save writes the audio payload under a unique name and returns its path.
func (s *FilesystemAudioStore) Save(_ context.Context, deviceID string, audio []byte, contentType string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating audio directory: %w", err)
	}

	ext, ok := audioExtensions[contentType]
	if !ok {
		ext = ".bin"
	}

	name := fmt.Sprintf("%s_%s%s", deviceID, uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("writing audio file: %w", err)
	}

	return path, nil
}

// Ensure FilesystemAudioStore implements AudioStore interface.
var _ AudioStore = (*FilesystemAudioStore)(nil)
