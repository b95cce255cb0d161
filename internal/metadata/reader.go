package metadata

import (
	"context"
	"log/slog"

	"blockmeta/internal/literal"
	"blockmeta/internal/slogutil"
)

// Reader decodes a declaration already present in a block file.
type Reader struct {
	decoder *literal.Decoder
	logger  *slog.Logger
}

// NewReader creates a reader. A nil logger discards output.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Reader{decoder: literal.NewDecoder(), logger: logger}
}

// ReadExisting returns the prior record as an ordered dict. Missing, unbalanced or
// undecodable declarations all report false; they are never errors.
func (r *Reader) ReadExisting(ctx context.Context, text string) (literal.Dict, bool) {
	span, ok := Locate(text)
	if !ok {
		r.logger.Debug("No existing declaration")
		return nil, false
	}

	raw := span.Literal(text)
	prior, err := r.decoder.DecodeDict(ctx, stripCommentMarkers(raw))
	if err != nil && stripCommentMarkers(raw) != raw {
		// A marked line that is not an entry decodes as the comment it is.
		prior, err = r.decoder.DecodeDict(ctx, raw)
	}
	if err != nil {
		r.logger.Warn("Ignoring malformed existing metadata", "error", err.Error())
		return nil, false
	}

	r.logger.Debug("Read existing declaration", "keys", len(prior))
	return prior, true
}
