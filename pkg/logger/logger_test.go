package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/pkg/logger"
)

func TestNew_EstampaCampoService(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "pos-api-test"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"pos-api-test"`)
}

func TestNew_ServicePorDefecto(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "info"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"pos-api"`)
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "verboso"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Debug().Msg("no debería salir")
	zl.Info().Msg("sí debería salir")

	assert.NotContains(t, buf.String(), "no debería salir")
	assert.Contains(t, buf.String(), "sí debería salir")
}
