package push

import (
	"encoding/json"
	"fmt"
	"io"
)

// readJSON into interface
func readJSON(in io.ReadCloser, v interface{}) error {
	body, err := io.ReadAll(in)
	_ = in.Close()
	if err != nil {
		return fmt.Errorf("io read: %w", err)
	}

	if len(body) == 0 {
		return nil
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// readString of the whole body
func readString(in io.ReadCloser) string {
	body, err := io.ReadAll(in)
	_ = in.Close()
	if err != nil {
		return ""
	}

	return string(body)
}
