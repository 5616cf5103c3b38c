package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode — как команда относится к рисованию прогресса.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressForced
	progressSuppressed
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressForced, nil
	case "off":
		return progressSuppressed, nil
	}
	return progressAuto, fmt.Errorf("bad --ui value %q, want auto, on or off", value)
}

// active решает, рисовать ли прогресс. Прогресс идёт в stderr, stdout
// остаётся отчёту, поэтому auto смотрит на stderr.
func (m progressMode) active() bool {
	switch m {
	case progressForced:
		return true
	case progressSuppressed:
		return false
	}
	return isTerminal(os.Stderr)
}
