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

// Package main is the entry point for building flow packs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/asgardeo/flowpack/internal/pack/builder"
	packmodel "github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/config"
	"github.com/asgardeo/flowpack/internal/system/constants"
	"github.com/asgardeo/flowpack/internal/system/log"
)

func main() {
	logger := log.GetLogger()

	flowPath := flag.String("flow", "", "Path to the flow document to pack")
	outPath := flag.String("out", "", "Path the pack archive is written to")
	metaPath := flag.String("meta", "", "Path to an optional pack descriptor (pack.toml)")
	componentDir := flag.String("components", "", "Component search directory")
	signing := flag.String("signing", string(packmodel.SigningDev), "Pack signing mode: dev or none")
	strict := flag.Bool("strict", false, "Verify the build is byte-for-byte reproducible")
	flowpackHomeFlag := flag.String("flowpackHome", "", "Path to the flowpack home directory")
	flag.Parse()

	if *flowPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: packbuild -flow <flow.yaml> -out <pack.zip> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	flowpackHome := getFlowpackHome(logger, *flowpackHomeFlag)
	cfg := initFlowpackConfigurations(logger, flowpackHome)

	buildConfig := packmodel.BuildConfig{
		FlowPath:          *flowPath,
		OutputPath:        *outPath,
		Signing:           signingMode(logger, *signing),
		MetaPath:          *metaPath,
		ComponentDir:      *componentDir,
		DiagnosticsDir:    path.Join(flowpackHome, cfg.Diagnostics.Directory),
		StrictDeterminism: *strict || strictFromEnvironment(),
	}
	if buildConfig.ComponentDir == "" {
		buildConfig.ComponentDir = path.Join(flowpackHome, cfg.Component.SearchDirectory)
	}
	if buildConfig.MetaPath == "" {
		if descriptor := path.Join(flowpackHome, cfg.Pack.DescriptorFile); fileExists(descriptor) {
			buildConfig.MetaPath = descriptor
		}
	}

	fmt.Printf("Packing %s\n", *flowPath)
	result, svcErr := builder.GetPackBuilderService().BuildPack(buildConfig)
	if svcErr != nil {
		fmt.Fprintf(os.Stderr, "pack build failed [%s]: %s\n", svcErr.Code, svcErr.ErrorDescription)
		os.Exit(1)
	}

	if buildConfig.StrictDeterminism {
		fmt.Println("Strict determinism verified")
	}
	fmt.Printf("Packed %s@%s (%d nodes, %d components) -> %s\n",
		result.PackID, result.PackVersion, result.NodeCount, result.ArtifactCount, result.OutputPath)
	fmt.Printf("Manifest hash blake3:%s\n", result.ManifestHash)
}

// getFlowpackHome retrieves and returns the flowpack home directory.
func getFlowpackHome(logger *log.Logger, flagValue string) string {
	if flagValue != "" {
		logger.Info("Using flowpackHome from command line argument", log.String("flowpackHome", flagValue))
		return flagValue
	}

	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initFlowpackConfigurations initializes the flowpack configurations.
func initFlowpackConfigurations(logger *log.Logger, flowpackHome string) *config.Config {
	configFilePath := path.Join(flowpackHome, "repository/conf/deployment.yaml")

	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatal("Failed to load configurations", log.Error(err))
		}
		cfg = config.DefaultConfig()
	}

	if err := config.InitializeFlowpackRuntime(flowpackHome, cfg); err != nil {
		logger.Fatal("Failed to initialize flowpack runtime", log.Error(err))
	}
	return cfg
}

// signingMode parses the signing flag.
func signingMode(logger *log.Logger, raw string) packmodel.SigningMode {
	switch strings.ToLower(raw) {
	case string(packmodel.SigningDev):
		return packmodel.SigningDev
	case string(packmodel.SigningNone):
		return packmodel.SigningNone
	default:
		logger.Fatal("Unknown signing mode", log.String("signing", raw))
		return packmodel.SigningNone
	}
}

// strictFromEnvironment reports whether the determinism check is forced on via
// the environment. Only the entry point reads process environment variables.
func strictFromEnvironment() bool {
	value := strings.ToLower(os.Getenv(constants.StrictDeterminismEnvironmentVariable))
	return value == "1" || value == "true" || value == "yes"
}

func fileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}
