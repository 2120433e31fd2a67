package templates

import (
	"time"

	"github.com/oksasatya/go-ddd-user-registration/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// NewWelcomeData builds the data map for the welcome template.
func NewWelcomeData(cfg *config.Config, email string, opts ...Option) map[string]any {
	d := EmailData{Email: email, Type: Welcome}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.CompanyName = cfg.CompanyName
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
