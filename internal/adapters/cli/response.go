package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ishakiro/pkg/present"
)

// printJSON writes a backend response indented. An empty body prints nothing.
func (h *Handler) printJSON(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) printf(key string, params map[string]any) {
	fmt.Fprintln(h.out, h.locale.T(key, params))
}

func (h *Handler) errorf(key string, params map[string]any) {
	fmt.Fprintln(h.errOut, h.locale.T(key, params))
}

// fail prints the user-facing text of err. The full chain goes to the log.
func (h *Handler) fail(err error) {
	h.logger.Debug("cli: command failed", "error", err)
	fmt.Fprintln(h.errOut, present.ErrorMessage(err, h.locale.T))
}
