package practice

import (
	"context"
	"fmt"
	"log/slog"
)

// SoundEnabled reports the shared sound preference.
func (s *Service) SoundEnabled(ctx context.Context) (bool, error) {
	if s.sound == nil {
		return s.opts.SoundDefault, nil
	}
	on, err := s.sound.SoundEnabled(ctx, s.opts.SoundDefault)
	if err != nil {
		return false, fmt.Errorf("read sound preference: %w", err)
	}
	return on, nil
}

// SetSoundEnabled stores the shared sound preference.
func (s *Service) SetSoundEnabled(ctx context.Context, enabled bool) error {
	if s.sound == nil {
		return fmt.Errorf("sound preference: no store configured")
	}
	if err := s.sound.SetSoundEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("store sound preference: %w", err)
	}
	s.log.InfoContext(ctx, "sound preference changed", slog.Bool("enabled", enabled))
	return nil
}

func (s *Service) soundOn(ctx context.Context) bool {
	on, err := s.SoundEnabled(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "sound preference unavailable", slog.String("error", err.Error()))
		return false
	}
	return on
}
