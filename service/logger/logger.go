// Package logger builds the zap loggers used by the serql command and
// service.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// DevMode makes DPanic level logs panic.
	DevMode bool          `yaml:"devmode"`
	Level   zapcore.Level `yaml:"level"`
	Mode    FileMode      `yaml:"mode"`

	// Path is a file name or one of stderr (the default), stdout, or
	// /dev/null.
	Path     string   `yaml:"path"`
	Rotation Rotation `yaml:"rotation"`
}

func New(conf Config) (*zap.Logger, error) {
	core, err := NewCore(conf)
	if err != nil {
		return nil, err
	}
	opts := []zap.Option{zap.AddCaller()}
	if conf.DevMode {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}

func NewCore(conf Config) (zapcore.Core, error) {
	w, err := openSink(conf)
	if err != nil {
		return nil, err
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), w, conf.Level), nil
}

func encoderConfig() zapcore.EncoderConfig {
	c := zap.NewProductionEncoderConfig()
	c.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncodeDuration = zapcore.StringDurationEncoder
	return c
}
