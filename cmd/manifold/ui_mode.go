package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode — трёхпозиционное значение флагов --ui и --color.
// auto разрешается по наличию терминала на соответствующем потоке.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func parseSwitchMode(name, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
	}
}

func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

func shouldUseTUI(mode switchMode) bool {
	return mode.enabled(os.Stdout)
}
