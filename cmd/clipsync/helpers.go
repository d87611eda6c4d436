package main

import (
	"time"

	"clipsync/internal/config"
)

func decodeTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Workflow.DecodeTimeoutSeconds) * time.Second
}

func muxTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Workflow.MuxTimeoutSeconds) * time.Second
}
