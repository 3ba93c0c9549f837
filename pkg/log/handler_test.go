package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonml/carbonml/pkg/errors"
)

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	err := errors.NewValueError("TrainTestSplit", "test size must be in (0, 1)")
	logger.Error("training candidates", ErrAttr(err))

	out := buf.String()
	require.Contains(t, out, `"`+ErrAttrKey+`"`)
	assert.Contains(t, out, `"`+StacktraceAttrKey+`"`, "errors built with WithStack must carry their capture site")
}

func TestErrFmtHandlerPlainRecordUnchanged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Info("model saved", ModelNameKey, "RandomForest")

	out := buf.String()
	assert.Contains(t, out, "RandomForest")
	assert.NotContains(t, out, StacktraceAttrKey)
}
