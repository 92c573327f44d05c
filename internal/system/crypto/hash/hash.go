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

// Package hash provides content hashing utilities for pack artifacts.
package hash

import (
	"encoding/hex"
	"io"
	"os"
	"strings"

	"lukechampine.com/blake3"
)

// SchemePrefix is the hash scheme prefix used in component manifests.
const SchemePrefix = "blake3:"

// Hash returns the hex-encoded BLAKE3 hash of the input byte array.
func Hash(input []byte) string {
	sum := blake3.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex-encoded BLAKE3 hash of a file's contents.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := blake3.New(32, nil)
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// WithScheme prefixes a hex digest with the manifest hash scheme.
func WithScheme(digest string) string {
	if strings.HasPrefix(digest, SchemePrefix) {
		return digest
	}
	return SchemePrefix + digest
}

// StripScheme removes the hash scheme prefix from a digest if present.
func StripScheme(digest string) string {
	return strings.TrimPrefix(digest, SchemePrefix)
}
