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

// Package builder provides the pack build orchestration service implementation.
package builder

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	componentconstants "github.com/asgardeo/flowpack/internal/component/constants"
	"github.com/asgardeo/flowpack/internal/component/resolver"
	flowmodel "github.com/asgardeo/flowpack/internal/flow/model"
	flowvalidator "github.com/asgardeo/flowpack/internal/flow/validator"
	"github.com/asgardeo/flowpack/internal/pack/assembler"
	"github.com/asgardeo/flowpack/internal/pack/constants"
	"github.com/asgardeo/flowpack/internal/pack/meta"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/schema"
	sysconstants "github.com/asgardeo/flowpack/internal/system/constants"
	"github.com/asgardeo/flowpack/internal/system/crypto/hash"
	"github.com/asgardeo/flowpack/internal/system/error/serviceerror"
	"github.com/asgardeo/flowpack/internal/system/log"
	"github.com/asgardeo/flowpack/internal/system/utils"
)

const loggerComponentName = "PackBuilder"

var (
	instance *PackBuilder
	once     sync.Once
)

// PackBuilderInterface defines the interface for the pack build service.
type PackBuilderInterface interface {
	// BuildPack runs the complete resolve-validate-assemble pipeline for one
	// flow and writes the pack archive. No artifact appears at the requested
	// output path unless the whole pipeline succeeds.
	BuildPack(buildConfig model.BuildConfig) (*model.BuildResult, *serviceerror.ServiceError)
}

// PackBuilder is the implementation of PackBuilderInterface.
type PackBuilder struct {
	flowValidator flowvalidator.FlowValidatorInterface
	packAssembler assembler.PackAssemblerInterface
}

// GetPackBuilderService returns the singleton pack build service.
func GetPackBuilderService() PackBuilderInterface {
	once.Do(func() {
		instance = NewPackBuilder(flowvalidator.NewFlowValidator(), assembler.NewPackAssembler())
	})
	return instance
}

// NewPackBuilder creates a pack build service with explicit collaborators.
func NewPackBuilder(flowValidator flowvalidator.FlowValidatorInterface,
	packAssembler assembler.PackAssemblerInterface) *PackBuilder {
	return &PackBuilder{
		flowValidator: flowValidator,
		packAssembler: packAssembler,
	}
}

// BuildPack builds one pack archive from the given build configuration.
func (b *PackBuilder) BuildPack(buildConfig model.BuildConfig) (
	*model.BuildResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	state := model.StateStart

	if buildConfig.Signing == "" {
		buildConfig.Signing = model.SigningDev
	}

	fail := func(svcErr *serviceerror.ServiceError) (*model.BuildResult, *serviceerror.ServiceError) {
		failedAt := state
		state = model.StateFailed
		logger.Error("Pack build failed", log.String("state", string(state)),
			log.String("failedAt", string(failedAt)),
			log.String("code", svcErr.Code), log.String("reason", svcErr.ErrorDescription))
		return nil, svcErr
	}

	source, err := os.ReadFile(filepath.Clean(buildConfig.FlowPath))
	if err != nil {
		return fail(serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed,
			fmt.Sprintf("failed to read flow document %s: %v", buildConfig.FlowPath, err)))
	}

	bundle, svcErr := b.flowValidator.ValidateFlow(string(source), buildConfig.FlowPath)
	if svcErr != nil {
		return fail(svcErr)
	}
	state = model.StateFlowValidated

	// The bundle is immutable; normalization mutates a private copy of the document.
	document, svcErr := copyDocument(bundle.Document)
	if svcErr != nil {
		return fail(svcErr)
	}

	componentResolver := resolver.NewComponentResolver(buildConfig.ComponentDir)
	nodes, svcErr := resolveNodes(bundle.Nodes, document, componentResolver)
	if svcErr != nil {
		return fail(svcErr)
	}
	state = model.StateNodesResolved

	schemaValidator := schema.NewSchemaValidator()
	if svcErr := compileSchemas(schemaValidator, nodes, componentResolver); svcErr != nil {
		return fail(svcErr)
	}

	normalizeConfigs(nodes, componentResolver)
	state = model.StateConfigNormalized

	violations, svcErr := validateConfigs(schemaValidator, nodes, componentResolver)
	if svcErr != nil {
		return fail(svcErr)
	}
	if len(violations) > 0 {
		return fail(schemaFailure(violations))
	}
	state = model.StateSchemaChecked

	artifacts := collectArtifacts(nodes, componentResolver)
	state = model.StateArtifactsCollected

	if err := writeSnapshots(buildConfig.DiagnosticsDir, nodes, componentResolver); err != nil {
		return fail(serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed, err.Error()))
	}

	packMeta, err := meta.LoadPackMeta(buildConfig.MetaPath, bundle.ID)
	if err != nil {
		return fail(serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed, err.Error()))
	}

	provenance := buildProvenance(buildConfig)

	finalBundle, svcErr := rebuildBundle(bundle, document)
	if svcErr != nil {
		return fail(svcErr)
	}

	assembleResult, err := b.packAssembler.Assemble(packMeta, finalBundle, buildConfig.Signing,
		provenance, artifacts, buildConfig.OutputPath)
	if err != nil {
		return fail(serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed, err.Error()))
	}
	state = model.StateAssembled

	if buildConfig.StrictDeterminism {
		if svcErr := b.verifyDeterminism(buildConfig, provenance); svcErr != nil {
			return fail(svcErr)
		}
		state = model.StateDeterminismChecked
		logger.Info("Strict determinism verified", log.String(log.LoggerKeyPackID, packMeta.ID))
	}

	state = model.StateDone
	logger.Info("Pack built", log.String(log.LoggerKeyPackID, packMeta.ID),
		log.String("outPath", assembleResult.OutputPath),
		log.Int("nodeCount", len(nodes)), log.Int("artifactCount", len(artifacts)))

	return &model.BuildResult{
		OutputPath:    assembleResult.OutputPath,
		PackID:        packMeta.ID,
		PackVersion:   packMeta.Version,
		ManifestHash:  assembleResult.ManifestHash,
		FlowHash:      finalBundle.HashBlake3,
		NodeCount:     len(nodes),
		ArtifactCount: len(artifacts),
		State:         state,
		Provenance:    provenance,
	}, nil
}

// verifyDeterminism rebuilds the pack into a scratch location with identical
// inputs and a frozen provenance record, then compares full archive bytes.
func (b *PackBuilder) verifyDeterminism(buildConfig model.BuildConfig,
	provenance model.Provenance) *serviceerror.ServiceError {
	scratchDir, err := os.MkdirTemp("", "flowpack-verify-*")
	if err != nil {
		return serviceerror.CustomServiceError(constants.ErrorNonDeterministicBuild,
			fmt.Sprintf("failed to create verification directory: %v", err))
	}
	defer func() {
		_ = os.RemoveAll(scratchDir)
	}()

	rerun := buildConfig
	rerun.OutputPath = filepath.Join(scratchDir, filepath.Base(buildConfig.OutputPath))
	rerun.StrictDeterminism = false
	rerun.FrozenProvenance = &provenance

	if _, svcErr := b.BuildPack(rerun); svcErr != nil {
		return serviceerror.CustomServiceError(constants.ErrorNonDeterministicBuild,
			fmt.Sprintf("verification rebuild failed: %s", svcErr.ErrorDescription))
	}

	first, err := os.ReadFile(buildConfig.OutputPath)
	if err != nil {
		return serviceerror.CustomServiceError(constants.ErrorNonDeterministicBuild,
			fmt.Sprintf("failed to read archive for comparison: %v", err))
	}
	second, err := os.ReadFile(rerun.OutputPath)
	if err != nil {
		return serviceerror.CustomServiceError(constants.ErrorNonDeterministicBuild,
			fmt.Sprintf("failed to read verification archive: %v", err))
	}
	if !bytes.Equal(first, second) {
		return serviceerror.CustomServiceError(constants.ErrorNonDeterministicBuild,
			fmt.Sprintf("archives differ: %d vs %d bytes", len(first), len(second)))
	}
	return nil
}

// compileSchemas compiles every resolved component's config schema up front so
// an uncompilable schema surfaces as a manifest problem, not a validation one.
func compileSchemas(schemaValidator schema.SchemaValidatorInterface, nodes []model.ResolvedNode,
	componentResolver resolver.ComponentResolverInterface) *serviceerror.ServiceError {
	for _, node := range nodes {
		record, ok := componentResolver.ResolvedByKey(node.ComponentKey)
		if !ok {
			continue
		}
		if err := schemaValidator.CompileComponentSchema(node.ComponentKey, record.SchemaJSON); err != nil {
			return serviceerror.CustomServiceError(componentconstants.ErrorManifestInvalid, err.Error())
		}
	}
	return nil
}

// validateConfigs validates every node configuration, accumulating violations
// across all nodes instead of stopping at the first one.
func validateConfigs(schemaValidator schema.SchemaValidatorInterface, nodes []model.ResolvedNode,
	componentResolver resolver.ComponentResolverInterface) ([]schema.NodeSchemaError, *serviceerror.ServiceError) {
	var violations []schema.NodeSchemaError
	for _, node := range nodes {
		componentName := node.ComponentKey
		if record, ok := componentResolver.ResolvedByKey(node.ComponentKey); ok {
			componentName = record.Name
		}
		nodeViolations, err := schemaValidator.ValidateNodeConfig(node.NodeID, componentName,
			node.ComponentKey, node.Pointer, node.Config)
		if err != nil {
			return nil, serviceerror.CustomServiceError(constants.ErrorSchemaValidationFailed, err.Error())
		}
		violations = append(violations, nodeViolations...)
	}
	return violations, nil
}

// schemaFailure folds every violation into one error listing all of them.
func schemaFailure(violations []schema.NodeSchemaError) *serviceerror.ServiceError {
	lines := make([]string, 0, len(violations))
	for _, violation := range violations {
		lines = append(lines, fmt.Sprintf("%s: %s", violation.Pointer, violation.Message))
	}
	return serviceerror.CustomServiceError(constants.ErrorSchemaValidationFailed, strings.Join(lines, "; "))
}

// copyDocument deep-copies the validated flow document for in-place normalization.
func copyDocument(document map[string]any) (map[string]any, *serviceerror.ServiceError) {
	copied, err := utils.DeepCopyJSONValue(document)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed,
			fmt.Sprintf("failed to copy flow document: %v", err))
	}
	documentCopy, ok := copied.(map[string]any)
	if !ok {
		return nil, serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed,
			"flow document must be a mapping")
	}
	return documentCopy, nil
}

// rebuildBundle re-canonicalizes the normalized document into the bundle that
// is archived, recomputing its content hash.
func rebuildBundle(bundle *flowmodel.FlowBundle, document map[string]any) (
	*flowmodel.FlowBundle, *serviceerror.ServiceError) {
	canonical, err := utils.CanonicalJSON(document)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorArchiveAssemblyFailed,
			fmt.Sprintf("failed to canonicalize flow document: %v", err))
	}

	final := *bundle
	final.Document = document
	final.CanonicalJSON = canonical
	final.HashBlake3 = hash.Hash(canonical)
	return &final, nil
}

// buildProvenance records who built the pack and when. The strict determinism
// re-run receives the first run's record unchanged.
func buildProvenance(buildConfig model.BuildConfig) model.Provenance {
	if buildConfig.FrozenProvenance != nil {
		return *buildConfig.FrozenProvenance
	}

	host, _ := os.Hostname()
	return model.Provenance{
		Builder:     sysconstants.ProductName + " " + sysconstants.ProductVersion,
		BuiltAt:     time.Now().UTC().Format(time.RFC3339),
		Host:        host,
		GitRevision: buildConfig.GitRevision,
		GitRemote:   buildConfig.GitRemote,
	}
}
