package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.LookupRateLimit < 1 {
		return fmt.Errorf("server.lookup_rate_limit must be >= 1 (got %d)", c.Server.LookupRateLimit)
	}

	if err := c.Local.validate(); err != nil {
		return fmt.Errorf("local: %w", err)
	}

	if err := c.Remote.validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	if c.Dictionary.Enabled {
		if _, err := url.ParseRequestURI(c.Dictionary.BaseURL); err != nil {
			return fmt.Errorf("dictionary.base_url: %w", err)
		}
		switch c.Dictionary.Accent {
		case "us", "uk", "au":
		default:
			return fmt.Errorf("dictionary.accent must be us, uk or au (got %q)", c.Dictionary.Accent)
		}
	}

	if c.Practice.IdleTTL < 0 {
		return fmt.Errorf("practice.idle_ttl must be >= 0 (got %v)", c.Practice.IdleTTL)
	}

	if err := c.WordOfDay.validate(); err != nil {
		return fmt.Errorf("word_of_day: %w", err)
	}

	return nil
}

func (l *LocalConfig) validate() error {
	switch l.Driver {
	case LocalMemory:
		return nil
	case LocalSQLite:
		if l.Path == "" {
			return fmt.Errorf("path is required for driver %q", l.Driver)
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q", l.Driver)
	}
}

func (r *RemoteConfig) validate() error {
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", r.Timeout)
	}

	switch r.Backend {
	case RemoteNone:
	case RemoteREST:
		if _, err := url.ParseRequestURI(r.REST.BaseURL); err != nil {
			return fmt.Errorf("rest.base_url: %w", err)
		}
	case RemoteSupabase:
		if _, err := url.ParseRequestURI(r.Supabase.URL); err != nil {
			return fmt.Errorf("supabase.url: %w", err)
		}
		if r.Supabase.APIKey == "" {
			return fmt.Errorf("supabase.api_key is required")
		}
		if r.Supabase.Table == "" {
			return fmt.Errorf("supabase.table is required")
		}
	case RemotePostgres:
		if r.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for backend %q", r.Backend)
		}
		if r.Database.MaxConns <= 0 || r.Database.MinConns < 0 || r.Database.MinConns > r.Database.MaxConns {
			return fmt.Errorf("database pool bounds invalid (min %d, max %d)", r.Database.MinConns, r.Database.MaxConns)
		}
		if r.Database.RevisionRetentionDays < 1 {
			return fmt.Errorf("database.revision_retention_days must be >= 1 (got %d)", r.Database.RevisionRetentionDays)
		}
	default:
		return fmt.Errorf("unknown backend %q", r.Backend)
	}
	return nil
}

func (w *WordOfDayConfig) validate() error {
	if _, err := ParseClock(w.At); err != nil {
		return fmt.Errorf("at: %w", err)
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	w.Location = loc
	return nil
}

// ParseClock validates an "HH:MM" wall clock time.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q (want HH:MM)", s)
	}
	return t, nil
}
