package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfString(t *testing.T) {
	assert.Nil(t, parseConfString("no-equal-sign"))
	assert.Nil(t, parseConfString("level=info"))

	assert.Equal(t, "{log: {level: trace}}", string(parseConfString("log.level=trace")))
	assert.Equal(t, "{signal: {mdns: true}}", string(parseConfString("signal.mdns=true")))
}

func TestLoadConfig(t *testing.T) {
	configs = [][]byte{
		[]byte("{signal: {mdns: true}}"),
		[]byte("{signal: {listen: \":1984\"}}"),
	}
	defer func() { configs = nil }()

	var cfg struct {
		Mod struct {
			MDNS   bool   `yaml:"mdns"`
			Listen string `yaml:"listen"`
		} `yaml:"signal"`
	}

	LoadConfig(&cfg)
	require.True(t, cfg.Mod.MDNS)
	require.Equal(t, ":1984", cfg.Mod.Listen)
}
