// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

// AssertRequiredOptions checks that every required option has a value in
// passed. A nil value or an empty string counts as missing. The first
// missing option, in declaration order, is reported.
func AssertRequiredOptions(options []Option, passed Options) error {
	for _, opt := range options {
		if !opt.Required {
			continue
		}
		p, err := ParsePattern(opt.Command)
		if err != nil {
			return &ValidationError{Err: err}
		}
		if passed.IsSet(p.Key()) {
			if s, ok := passed[p.Key()].(string); !ok || s != "" {
				continue
			}
		}
		return &ValidationError{Option: p.Flag()}
	}
	return nil
}
