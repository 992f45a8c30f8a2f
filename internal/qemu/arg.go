// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Argument is a QEMU argument with or without value.
//
// Its name might be marked to be unique in the argument list of a
// [CommandSpec].
type Argument struct {
	name          string
	value         string
	nonUniqueName bool
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// Name returns the name of the [Argument].
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// Equal compares the [Argument]s.
//
// If the name is marked unique, only names are compared. Otherwise name and
// value are compared.
func (a Argument) Equal(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.nonUniqueName {
		return a.value == other.value
	}

	return true
}

// UniqueArg returns a new [Argument] with the given name that is marked as
// unique and so can be present in a [CommandSpec] argument list only once.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns a new [Argument] with the given name that is not
// unique and so can be present multiple times, as long as the values differ.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:          name,
		value:         strings.Join(value, ","),
		nonUniqueName: true,
	}
}

// ParseArgs converts a raw QEMU flag list, as carried by check and suite
// definitions, into [Argument]s.
//
// A token starting with "-" begins a new argument. A directly following token
// that does not start with "-" is taken as its value. All parsed arguments
// are repeatable, so raw lists may carry flags like -trace multiple times.
func ParseArgs(raw []string) ([]Argument, error) {
	args := make([]Argument, 0, len(raw))

	for idx := 0; idx < len(raw); idx++ {
		name := strings.TrimPrefix(raw[idx], "-")
		if name == raw[idx] || name == "" || name == "-" {
			return nil, &ArgumentError{
				msg: fmt.Sprintf("not a flag: %q", raw[idx]),
			}
		}

		name = strings.TrimPrefix(name, "-")

		var value []string
		if idx+1 < len(raw) && !strings.HasPrefix(raw[idx+1], "-") {
			value = append(value, raw[idx+1])
			idx++
		}

		args = append(args, RepeatableArg(name, value...))
	}

	return args, nil
}

// BuildArgumentStrings compiles the [Argument]s into a slice of strings which
// can be used with [os/exec.Command].
//
// It returns an error if the name uniqueness constraint of any [Argument] is
// violated.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	argStrings := make([]string, 0, len(args)*2)

	for idx, arg := range args {
		// Equality is checked in both directions so that an earlier unique
		// argument's name-only comparison wins against a later repeatable
		// one with the same name.
		collides := func(other Argument) bool {
			return arg.Equal(other) || other.Equal(arg)
		}

		if i := slices.IndexFunc(args[:idx], collides); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrArgumentCollision,
				arg.String(),
				args[i].String(),
			)
		}

		argStrings = append(argStrings, "-"+arg.name)

		if arg.value != "" {
			argStrings = append(argStrings, arg.value)
		}
	}

	return argStrings, nil
}
