// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New returns a structured logger. Mode "prod" or "production" selects
// the JSON production config; anything else selects the development
// console config.
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case "prod", "production", "release":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
