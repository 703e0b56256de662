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

// Package common holds the locations swiss keeps its files in.
package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

var (
	// Directory holds the default sqlite database.
	Directory = filepath.Join(xdg.DataHome, "swiss")

	// ConfigDirectory holds config.yaml.
	ConfigDirectory = filepath.Join(xdg.ConfigHome, "swiss")

	DatabaseFile = filepath.Join(Directory, "tournament.db")
	ConfigFile   = filepath.Join(ConfigDirectory, "config.yaml")
)

// TryMkdir creates dir and any missing parents.
func TryMkdir(dir string) error {
	return os.MkdirAll(dir, DirPermissions)
}

// TryCreate writes data to file unless the file already exists.
func TryCreate(file string, data []byte) error {
	if _, err := os.Stat(file); !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := TryMkdir(filepath.Dir(file)); err != nil {
		return err
	}

	return os.WriteFile(file, data, FilePermissions)
}
