// Package config loads the printing settings and holds them as an
// immutable snapshot behind an atomic store.
package config

import (
	"encoding/json"
	"os"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Settings is one immutable snapshot of the printing configuration.
// Components receive a snapshot per call and never read shared mutable
// state.
type Settings struct {
	PrinterHost string `json:"printer_ip"`
	PrinterPort int    `json:"printer_port"`
	// ReceiptWidth is the receipt width in characters.
	ReceiptWidth int    `json:"receipt_width_chars"`
	Currency     string `json:"currency"`
	// Encoding names the character table used for ESC/POS text
	// conversion (e.g. "cp858").
	Encoding string `json:"escpos_encoding"`
	// Codepage is the numeric argument of the ESC t select-codepage
	// command; it must correspond to Encoding on the device.
	Codepage int `json:"escpos_select_codepage"`
	// ExtraFeeds is the number of blank lines fed before the cut.
	ExtraFeeds  int    `json:"extra_feeds_after_code"`
	VenueHeader string `json:"venue_header"`
}

// Defaults returns the settings used when no file is present.
func Defaults() Settings {
	return Settings{
		PrinterHost:  "",
		PrinterPort:  9100,
		ReceiptWidth: 42,
		Currency:     "€",
		Encoding:     "cp858",
		Codepage:     19,
		ExtraFeeds:   10,
		VenueHeader:  "Oratorio di Petosino - SeptemberFest",
	}
}

// Load reads settings from a JSON file, falling back to defaults for
// missing fields. A missing or unreadable file yields pure defaults;
// loading never fails.
func Load(path string) Settings {
	s := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(b, &s); err != nil {
		log.WithError(err).WithField("path", path).Warn("invalid settings file, using defaults")
		return Defaults()
	}
	return s
}

// Store holds the current settings snapshot. Reload swaps in a freshly
// loaded snapshot atomically; readers always see a complete value.
type Store struct {
	path string
	v    atomic.Value // Settings
}

// NewStore loads the file once and returns the store.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.v.Store(Load(path))
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() Settings {
	return s.v.Load().(Settings)
}

// Reload re-reads the file and publishes the new snapshot.
func (s *Store) Reload() Settings {
	cfg := Load(s.path)
	s.v.Store(cfg)
	return cfg
}
