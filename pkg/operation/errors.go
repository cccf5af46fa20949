// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"fmt"
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// IOError reports a file that could not be read, decoded, or written, or an
// output directory that could not be created.
type IOError struct {
	Path string
	Op   string // read, decode, write, or mkdir
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// newIOError drops the path from a wrapped *fs.PathError so it is not repeated
func newIOError(op, path string, err error) *IOError {
	var perr *fs.PathError
	if errors.As(err, &perr) {
		err = perr.Err
	}
	return &IOError{Path: path, Op: op, Err: err}
}
