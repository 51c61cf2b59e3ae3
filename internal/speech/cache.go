package speech

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Cache stores synthesized clips on disk so repeated tutor phrases (greetings,
// praise, vocabulary drills) don't hit the provider twice. Keys are derived
// from the text, voice and model, so a voice change never replays stale audio.
type Cache struct {
	dir   string
	inner Synthesizer
}

func NewCache(dir string, inner Synthesizer) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Cache{dir: dir, inner: inner}, nil
}

func cacheKey(text, voice, model string) string {
	sum := md5.Sum([]byte(text + "|" + voice + "|" + model))
	return fmt.Sprintf("%x", sum)[:16]
}

func (c *Cache) pathFor(text, voice, model string) string {
	return filepath.Join(c.dir, cacheKey(text, voice, model)+".mp3")
}

func (c *Cache) Synthesize(ctx context.Context, text, voice, model string) ([]byte, error) {
	path := c.pathFor(text, voice, model)

	if audio, err := os.ReadFile(path); err == nil && len(audio) > 0 {
		logrus.WithField("path", path).Debug("cache hit")
		return audio, nil
	}

	audio, err := c.inner.Synthesize(ctx, text, voice, model)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, audio, 0644); err != nil {
		// A full disk should not break narration.
		logrus.WithError(err).Warn("failed to write audio cache")
	}
	return audio, nil
}

// Stats reports the number and total size of cached clips.
func (c *Cache) Stats() (files int64, bytes int64, err error) {
	err = filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".mp3") {
			files++
			bytes += info.Size()
		}
		return nil
	})
	return files, bytes, err
}

// Clear removes every cached clip.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0755)
}

func (c *Cache) Close() error {
	return c.inner.Close()
}
