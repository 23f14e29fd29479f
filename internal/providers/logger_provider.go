package providers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"prayertrack/internal/structures"
)

// TypeEnum selects the log channel a message belongs to. Each channel
// is written to its own file so storage and sync noise stays out of
// the application log.
type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeStore
	TypeSync
)

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	app   zerolog.Logger
	store zerolog.Logger
	sync  zerolog.Logger
	files []*os.File
}

// NewLogProvider opens the per-channel log files under the configured
// directory. In debug mode output is additionally echoed to stderr as
// a console stream.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0755); err != nil {
		return nil, err
	}

	p := &LogProvider{}
	mode := os.FileMode(conf.Logger.Mode)

	open := func(name string) (zerolog.Logger, error) {
		f, err := os.OpenFile(filepath.Join(conf.Logger.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, mode)
		if err != nil {
			p.Close()
			return zerolog.Logger{}, err
		}
		p.files = append(p.files, f)

		var w zerolog.LevelWriter = zerolog.MultiLevelWriter(f)
		if conf.Debug {
			w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	}

	if p.app, err = open("app.log"); err != nil {
		return nil, err
	}
	if p.store, err = open("store.log"); err != nil {
		return nil, err
	}
	if p.sync, err = open("sync.log"); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *LogProvider) byType(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeStore:
		return &p.store
	case TypeSync:
		return &p.sync
	default:
		return &p.app
	}
}

func (p *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Debug().Msgf(format, args...)
}

func (p *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Info().Msgf(format, args...)
}

func (p *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Warn().Msgf(format, args...)
}

func (p *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Error().Msgf(format, args...)
}

func (p *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	p.byType(t).Fatal().Msgf(format, args...)
}

func (p *LogProvider) Close() {
	for _, f := range p.files {
		f.Close()
	}
	p.files = nil
}
