// SPDX-License-Identifier: MIT

package robots

import (
	"errors"
	"fmt"
)

// ErrUnknownRobot is returned for a name missing from the registry.
var ErrUnknownRobot = errors.New("robots: unknown robot")

// ErrNoSolver is returned by RunSolver when no solver is bound.
var ErrNoSolver = errors.New("robots: no solver bound")

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = d
	}

	return m
}()

// Names lists registered robots in registry order.
func Names() []string {
	out := make([]string, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.Name
	}

	return out
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%q: %w", name, ErrUnknownRobot)
	}

	return d, nil
}
