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

// Package assembler writes byte-stable pack archives.
package assembler

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/asgardeo/flowpack/internal/pack/constants"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/crypto/hash"
	"github.com/asgardeo/flowpack/internal/system/log"
	"github.com/asgardeo/flowpack/internal/system/utils"

	flowmodel "github.com/asgardeo/flowpack/internal/flow/model"
)

const loggerComponentName = "PackAssembler"

// Zip entry timestamps are pinned so identical inputs produce identical bytes.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// AssembleResult is the outcome of one archive assembly.
type AssembleResult struct {
	OutputPath   string
	ManifestHash string
}

// PackAssemblerInterface defines the interface for the archive assembly service.
type PackAssemblerInterface interface {
	// Assemble writes the complete pack archive to outPath. The archive appears
	// at outPath atomically; a failed assembly leaves no partial file there.
	Assemble(meta *model.PackMeta, bundle *flowmodel.FlowBundle, signing model.SigningMode,
		provenance model.Provenance, artifacts []model.ComponentArtifact, outPath string) (*AssembleResult, error)
}

// ZipPackAssembler is the implementation of PackAssemblerInterface producing a
// deterministic zip archive.
type ZipPackAssembler struct{}

// NewPackAssembler creates a new archive assembly service.
func NewPackAssembler() PackAssemblerInterface {
	return &ZipPackAssembler{}
}

// Assemble writes the pack archive for one build.
func (a *ZipPackAssembler) Assemble(meta *model.PackMeta, bundle *flowmodel.FlowBundle,
	signing model.SigningMode, provenance model.Provenance, artifacts []model.ComponentArtifact,
	outPath string) (*AssembleResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	manifestJSON, manifestHash, err := renderManifest(meta, bundle, signing, provenance, artifacts)
	if err != nil {
		return nil, err
	}

	entries := []archiveEntry{
		{name: constants.ArchiveManifestEntry, content: manifestJSON},
		{name: constants.ArchiveFlowDir + "/" + bundle.ID + ".yaml", content: []byte(bundle.SourceYAML)},
		{name: constants.ArchiveFlowDir + "/" + bundle.ID + ".json", content: bundle.CanonicalJSON},
	}
	for i := range artifacts {
		artifact := &artifacts[i]
		wasm, err := os.ReadFile(filepath.Clean(artifact.ArtifactPath))
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact for %s: %w", artifact.Key(), err)
		}
		base := constants.ArchiveComponentDir + "/" + artifact.Key() + "/"
		entries = append(entries,
			archiveEntry{name: base + constants.ArchiveComponentArtifactName, content: wasm},
			archiveEntry{name: base + constants.ArchiveComponentManifestName, content: artifact.ManifestJSON},
		)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	if err := writeArchive(outPath, entries); err != nil {
		return nil, err
	}

	logger.Debug("Pack archive assembled", log.String(log.LoggerKeyPackID, meta.ID),
		log.String("outPath", outPath), log.Int("entryCount", len(entries)))
	return &AssembleResult{OutputPath: outPath, ManifestHash: manifestHash}, nil
}

type archiveEntry struct {
	name    string
	content []byte
}

// renderManifest produces the canonical pack manifest and its content hash.
// Dev signing embeds a signature block over the unsigned manifest bytes.
func renderManifest(meta *model.PackMeta, bundle *flowmodel.FlowBundle, signing model.SigningMode,
	provenance model.Provenance, artifacts []model.ComponentArtifact) ([]byte, string, error) {
	components := make([]map[string]any, 0, len(artifacts))
	for i := range artifacts {
		artifact := &artifacts[i]
		components = append(components, map[string]any{
			"name":    artifact.Name,
			"version": artifact.Version,
			"world":   artifact.World,
			"hash":    hash.WithScheme(artifact.HashHex),
			"path":    constants.ArchiveComponentDir + "/" + artifact.Key() + "/" + constants.ArchiveComponentArtifactName,
		})
	}

	manifest := map[string]any{
		"schema_version": constants.PackManifestSchemaVersion,
		"pack":           meta,
		"flows": []map[string]any{{
			"id":     bundle.ID,
			"kind":   bundle.Kind,
			"entry":  bundle.Entry,
			"hash":   hash.WithScheme(bundle.HashBlake3),
			"source": constants.ArchiveFlowDir + "/" + bundle.ID + ".yaml",
		}},
		"components": components,
		"provenance": provenance,
	}

	if signing == model.SigningDev {
		unsigned, err := utils.CanonicalJSON(manifest)
		if err != nil {
			return nil, "", fmt.Errorf("failed to canonicalize pack manifest: %w", err)
		}
		manifest["signature"] = map[string]any{
			"mode":      string(model.SigningDev),
			"algorithm": "blake3",
			"digest":    hash.WithScheme(hash.Hash(unsigned)),
		}
	}

	rendered, err := utils.CanonicalJSON(manifest)
	if err != nil {
		return nil, "", fmt.Errorf("failed to canonicalize pack manifest: %w", err)
	}
	return rendered, hash.Hash(rendered), nil
}

// writeArchive writes the sorted entries into a temp file next to outPath and
// renames it into place.
func writeArchive(outPath string, entries []archiveEntry) error {
	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	tmp, err := os.CreateTemp(outDir, ".pack-*")
	if err != nil {
		return fmt.Errorf("failed to create staging file in %s: %w", outDir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	writer := zip.NewWriter(tmp)
	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:     entry.name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		dest, err := writer.CreateHeader(header)
		if err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to add archive entry %s: %w", entry.name, err)
		}
		if _, err := dest.Write(entry.content); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write archive entry %s: %w", entry.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("failed to move archive to %s: %w", outPath, err)
	}
	return nil
}
