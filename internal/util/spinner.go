// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// SPIN is the spinner.CharSets index used for the working spinner.
const SPIN = 31

var working = spinner.New(
	spinner.CharSets[SPIN], 100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
)

// StartSpinner shows the working spinner on stderr. It stays hidden at the
// Trace level, where it would garble the log output.
func StartSpinner() {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}

	working.Start()
}

// PauseSpinner hides the working spinner until the next StartSpinner.
func PauseSpinner() {
	working.Stop()
}
