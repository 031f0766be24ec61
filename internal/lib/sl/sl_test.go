package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "", attr.Value.String())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, sl.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, sl.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, sl.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, sl.ParseLevel("whatever"))
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, sl.OrDiscard(nil))

	log := slog.Default()
	assert.Same(t, log, sl.OrDiscard(log))
}
