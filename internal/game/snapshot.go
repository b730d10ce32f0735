package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveVersion tags the export envelope.
const SaveVersion = "hotzone_na_save_v1"

// ErrInvalidSave is returned when a save cannot be turned back into a game.
var ErrInvalidSave = errors.New("invalid save")

// saveEnvelope is the exported form of a game.
type saveEnvelope struct {
	SaveVersion string `json:"saveVersion"`
	Game        *State `json:"game"`
}

// requiredSaveKeys must be present in every imported state.
var requiredSaveKeys = []string{"players", "cities", "playerDeck"}

// Export encodes the game's state inside a versioned envelope.
func Export(g *Game) ([]byte, error) {
	data, err := json.Marshal(saveEnvelope{SaveVersion: SaveVersion, Game: g.state})
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

// Import decodes a save produced by Export. A bare state without the envelope
// is accepted too. Missing supply counts and flags are defaulted, and the
// sink defaults to NopSink when opts carries none.
func Import(data []byte, opts Options) (*Game, error) {
	state, err := DecodeState(data)
	if err != nil {
		return nil, err
	}
	return Restore(state, opts)
}

// DecodeState parses the state out of a save without building a Game.
func DecodeState(data []byte) (*State, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	raw := json.RawMessage(data)
	fields := top
	if inner, ok := top["game"]; ok && !isNull(inner) {
		raw = inner
		fields = nil
		if err := json.Unmarshal(inner, &fields); err != nil {
			return nil, fmt.Errorf("%w: game: %v", ErrInvalidSave, err)
		}
	}
	for _, key := range requiredSaveKeys {
		if v, ok := fields[key]; !ok || isNull(v) {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidSave, key)
		}
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	return &state, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// ComputeChecksum hashes the canonical JSON encoding of a state. Map keys are
// encoded in sorted order, so equal states always hash equal.
func ComputeChecksum(state *State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyRoundTrip checks that a state survives an export and import without
// changing its checksum.
func VerifyRoundTrip(state *State) error {
	before, err := ComputeChecksum(state)
	if err != nil {
		return err
	}
	data, err := json.Marshal(saveEnvelope{SaveVersion: SaveVersion, Game: state})
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	decoded, err := DecodeState(data)
	if err != nil {
		return err
	}
	after, err := ComputeChecksum(decoded)
	if err != nil {
		return err
	}
	if before != after {
		return fmt.Errorf("checksum mismatch: original=%s, decoded=%s", before, after)
	}
	return nil
}
