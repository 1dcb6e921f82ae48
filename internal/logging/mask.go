// Copyright (c) 2025 Csvlate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages so
// that the DeepL credential is never exposed in verbose output or error
// messages shown to users.
package logging

import (
	"regexp"
	"strings"
)

var (
	reAuthKey = regexp.MustCompile(`(?i)(auth_key=)([^\s&;]+)`)
	reAPIKey  = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s&;]+)`)
	reToken   = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._:-]+)`)
	// DeepL keys look like 8-4-4-4-12 hex groups, free-tier keys with a ":fx" tail.
	reDeepLKey = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(:fx)?`)
)

// Mask replaces sensitive values in the input string with "*".
func Mask(s string) string {
	out := s
	out = reAuthKey.ReplaceAllString(out, "$1***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reDeepLKey.ReplaceAllString(out, "***")
	// Basic env-like pairs key=VALUE; mask common secret keys
	for _, k := range []string{"DEEPL_API_KEY", "DEEPL_AUTH_KEY"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}

// MaskKey shows only the first four characters of an API key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
