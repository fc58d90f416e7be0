// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Level says whether a property is predicted once per molecular system or
// once per atom in the system.
type Level string

const (
	// LevelSystem marks properties with a single value per system, such as
	// the total energy of a structure.
	LevelSystem Level = "system"

	// LevelAtom marks properties with one value per atom, such as forces.
	LevelAtom Level = "atom"
)

// ParseLevel converts a raw string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelSystem, LevelAtom:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown level %q: must be %q or %q", s, LevelSystem, LevelAtom)
	}
}
