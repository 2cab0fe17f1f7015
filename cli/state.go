package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"santorini/game"
)

// readState decodes a JSON state from path, or from stdin when path is empty
// or "-".
func readState(path string, stdin io.Reader) (game.State, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return game.State{}, fmt.Errorf("failed to read state: %w", err)
	}

	var s game.State
	if err := json.Unmarshal(data, &s); err != nil {
		return game.State{}, err
	}
	return s, nil
}
