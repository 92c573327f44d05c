/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package store provides filesystem access to component builds on the search path.
package store

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/asgardeo/flowpack/internal/component/constants"
	"github.com/asgardeo/flowpack/internal/component/model"
	"github.com/asgardeo/flowpack/internal/system/log"
)

const loggerComponentName = "ComponentStore"

// Candidate is one component build discovered on the search path.
type Candidate struct {
	Manifest     model.Manifest
	ManifestJSON []byte
	ManifestPath string
	Dir          string
	Version      *semver.Version
}

// ArtifactPath returns the location of the candidate's executable artifact,
// resolved relative to its manifest directory.
func (c *Candidate) ArtifactPath() string {
	artifact := c.Manifest.Artifacts[constants.ArtifactKeyComponentWasm]
	if artifact == "" {
		artifact = constants.DefaultArtifactFileName
	}
	return filepath.Join(c.Dir, artifact)
}

// ComponentStoreInterface defines the interface for the component build store.
type ComponentStoreInterface interface {
	Candidates(name string) ([]Candidate, error)
	InvalidManifests() []string
}

// FileComponentStore is the implementation of ComponentStoreInterface backed by
// a local directory tree. The search path is scanned once per store instance;
// component sources are never mutated.
type FileComponentStore struct {
	searchDir  string
	scanned    bool
	candidates map[string][]Candidate
	invalid    []string
}

// NewFileComponentStore creates a component store over the given search directory.
func NewFileComponentStore(searchDir string) ComponentStoreInterface {
	return &FileComponentStore{
		searchDir:  searchDir,
		candidates: make(map[string][]Candidate),
	}
}

// Candidates returns every parseable build of the named component found on the
// search path.
func (s *FileComponentStore) Candidates(name string) ([]Candidate, error) {
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.candidates[name], nil
}

// InvalidManifests returns the paths of manifests that could not be parsed
// during the scan. Used to turn an unexplained lookup miss into a manifest error.
func (s *FileComponentStore) InvalidManifests() []string {
	return s.invalid
}

func (s *FileComponentStore) scan() error {
	if s.scanned {
		return nil
	}
	s.scanned = true

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Scanning component search path", log.String("searchDir", s.searchDir))

	info, err := os.Stat(s.searchDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Component search path does not exist", log.String("searchDir", s.searchDir))
			return nil
		}
		return fmt.Errorf("failed to read component search path %s: %w", s.searchDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("component search path %s is not a directory", s.searchDir)
	}

	walkErr := filepath.WalkDir(s.searchDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || entry.Name() != constants.ManifestFileName {
			return nil
		}
		s.loadManifest(logger, path)
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk component search path %s: %w", s.searchDir, walkErr)
	}

	logger.Debug("Component search path scanned",
		log.Int("componentCount", len(s.candidates)), log.Int("invalidCount", len(s.invalid)))
	return nil
}

func (s *FileComponentStore) loadManifest(logger *log.Logger, path string) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		logger.Warn("Failed to read component manifest", log.String("path", path), log.Error(err))
		s.invalid = append(s.invalid, path)
		return
	}

	var manifest model.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		logger.Warn("Failed to parse component manifest", log.String("path", path), log.Error(err))
		s.invalid = append(s.invalid, path)
		return
	}
	if manifest.Name == "" {
		logger.Warn("Component manifest does not declare a name", log.String("path", path))
		s.invalid = append(s.invalid, path)
		return
	}

	version, err := semver.NewVersion(manifest.Version)
	if err != nil {
		logger.Warn("Component manifest declares an invalid version",
			log.String("path", path), log.String("version", manifest.Version), log.Error(err))
		s.invalid = append(s.invalid, path)
		return
	}

	s.candidates[manifest.Name] = append(s.candidates[manifest.Name], Candidate{
		Manifest:     manifest,
		ManifestJSON: raw,
		ManifestPath: path,
		Dir:          filepath.Dir(path),
		Version:      version,
	})
}
