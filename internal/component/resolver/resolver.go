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

// Package resolver provides the component resolution service implementation.
package resolver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/asgardeo/flowpack/internal/component/constants"
	"github.com/asgardeo/flowpack/internal/component/model"
	"github.com/asgardeo/flowpack/internal/component/store"
	flowconstants "github.com/asgardeo/flowpack/internal/flow/constants"
	"github.com/asgardeo/flowpack/internal/system/crypto/hash"
	"github.com/asgardeo/flowpack/internal/system/error/serviceerror"
	"github.com/asgardeo/flowpack/internal/system/log"
)

const loggerComponentName = "ComponentResolver"

// ComponentResolverInterface defines the interface for the component resolution service.
type ComponentResolverInterface interface {
	// ResolveComponent locates the highest component build satisfying the
	// version requirement and returns its immutable record.
	ResolveComponent(name string, versionReq string) (*model.ResolvedComponent, *serviceerror.ServiceError)
	// ResolvedByKey looks up an already resolved record by its name@version key.
	ResolvedByKey(key string) (*model.ResolvedComponent, bool)
}

// ComponentResolver is the implementation of ComponentResolverInterface. Its
// memo table is scoped to one build invocation; concurrent builds must each own
// their own resolver.
type ComponentResolver struct {
	store    store.ComponentStoreInterface
	memo     map[string]*model.ResolvedComponent
	requests map[string]string
}

// NewComponentResolver creates a resolver over the given search directory.
func NewComponentResolver(searchDir string) ComponentResolverInterface {
	return NewComponentResolverWithStore(store.NewFileComponentStore(searchDir))
}

// NewComponentResolverWithStore creates a resolver over a caller-supplied store.
func NewComponentResolverWithStore(componentStore store.ComponentStoreInterface) ComponentResolverInterface {
	return &ComponentResolver{
		store:    componentStore,
		memo:     make(map[string]*model.ResolvedComponent),
		requests: make(map[string]string),
	}
}

// ResolveComponent resolves a component reference against the search path.
func (r *ComponentResolver) ResolveComponent(name string, versionReq string) (
	*model.ResolvedComponent, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if versionReq == "" {
		versionReq = flowconstants.DefaultVersionRequirement
	}
	requestKey := name + "\x00" + versionReq
	if key, ok := r.requests[requestKey]; ok {
		return r.memo[key], nil
	}

	constraint, err := semver.NewConstraint(versionReq)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorComponentNotFound,
			fmt.Sprintf("invalid version requirement `%s` for component `%s`", versionReq, name))
	}

	candidates, err := r.store.Candidates(name)
	if err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorComponentNotFound, err.Error())
	}

	var best *store.Candidate
	for i := range candidates {
		candidate := &candidates[i]
		if !constraint.Check(candidate.Version) {
			continue
		}
		if best == nil || candidate.Version.GreaterThan(best.Version) {
			best = candidate
		}
	}

	if best == nil {
		invalid := r.store.InvalidManifests()
		if related := relatedInvalidManifests(invalid, name); len(related) > 0 {
			return nil, serviceerror.CustomServiceError(constants.ErrorManifestInvalid,
				fmt.Sprintf("no build of `%s` satisfies `%s`; its manifests could not be parsed: %s",
					name, versionReq, strings.Join(related, ", ")))
		}
		description := fmt.Sprintf("no build of `%s` satisfies `%s`", name, versionReq)
		if len(invalid) > 0 {
			description += "; unparseable manifests elsewhere on the search path: " + strings.Join(invalid, ", ")
		}
		return nil, serviceerror.CustomServiceError(constants.ErrorComponentNotFound, description)
	}

	resolved, svcErr := r.toResolved(best)
	if svcErr != nil {
		return nil, svcErr
	}

	key := resolved.Key()
	if existing, ok := r.memo[key]; ok {
		// Two requirements matched the same build; share the record.
		resolved = existing
	} else {
		r.memo[key] = resolved
	}
	r.requests[requestKey] = key

	logger.Debug("Component resolved", log.String("name", name),
		log.String("versionReq", versionReq), log.String("key", key))
	return resolved, nil
}

// ResolvedByKey returns the memoized record for a name@version key.
func (r *ComponentResolver) ResolvedByKey(key string) (*model.ResolvedComponent, bool) {
	resolved, ok := r.memo[key]
	return resolved, ok
}

func (r *ComponentResolver) toResolved(candidate *store.Candidate) (
	*model.ResolvedComponent, *serviceerror.ServiceError) {
	manifest := &candidate.Manifest

	artifactPath := candidate.ArtifactPath()
	artifactHash := manifest.Hashes[constants.ArtifactKeyComponentWasm]
	if artifactHash == "" {
		computed, err := hash.HashFile(artifactPath)
		if err != nil {
			return nil, serviceerror.CustomServiceError(constants.ErrorManifestInvalid,
				fmt.Sprintf("manifest %s declares no artifact hash and the artifact is unreadable: %v",
					candidate.ManifestPath, err))
		}
		artifactHash = hash.WithScheme(computed)
	}

	operations := make([]string, 0, len(manifest.Operations))
	for _, operation := range manifest.Operations {
		if operation.Name != "" {
			operations = append(operations, operation.Name)
		}
	}

	return &model.ResolvedComponent{
		Name:             manifest.Name,
		Version:          candidate.Version,
		ArtifactPath:     artifactPath,
		ManifestJSON:     candidate.ManifestJSON,
		SchemaJSON:       rawOrNil(manifest.ConfigSchema),
		CapabilitiesJSON: rawOrNil(manifest.Capabilities),
		World:            manifest.World,
		ArtifactHash:     artifactHash,
		Operations:       operations,
	}, nil
}

// relatedInvalidManifests filters unparseable manifest paths down to those
// plausibly belonging to the named component. An unrelated broken manifest must
// not turn a plain lookup miss into a manifest error.
func relatedInvalidManifests(invalid []string, name string) []string {
	var related []string
	for _, path := range invalid {
		if strings.Contains(path, name) {
			related = append(related, path)
		}
	}
	return related
}

// rawOrNil drops empty and literal-null JSON fragments.
func rawOrNil(raw []byte) []byte {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return raw
}
