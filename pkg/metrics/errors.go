package metrics

import "errors"

// ErrWriteTextfile is returned when the registry cannot be flushed to the
// node_exporter textfile.
var ErrWriteTextfile = errors.New("cannot write metrics textfile")
