// Package discipline holds the fixed competition timing table for the
// supported freediving disciplines.
package discipline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDiscipline is returned for codes outside the supported set.
var ErrUnknownDiscipline = errors.New("unknown discipline")

// ErrInvalidConfig is returned by Validate for inconsistent timing tables.
var ErrInvalidConfig = errors.New("invalid discipline config")

// Code identifies a discipline.
type Code string

const (
	Static         Code = "STA"
	Dynamic        Code = "DYN"
	ConstantWeight Code = "CWT"
)

// Config contains the protocol durations of a discipline, in whole seconds.
// BottomTime is zero when the discipline has no depth phase.
type Config struct {
	Code            Code
	Name            string
	OfficialTop     int
	BottomTime      int
	SurfaceProtocol int
	MaxPerformance  int
}

// HasBottomTime reports whether the discipline runs a bottom time countdown.
func (config Config) HasBottomTime() bool {
	return config.BottomTime > 0
}

// Validate checks the duration invariants.
func (config Config) Validate() error {
	if config.OfficialTop <= 0 || config.SurfaceProtocol <= 0 || config.MaxPerformance <= 0 {
		return fmt.Errorf("%w: %s: durations must be positive", ErrInvalidConfig, config.Code)
	}
	if config.BottomTime < 0 {
		return fmt.Errorf("%w: %s: negative bottom time", ErrInvalidConfig, config.Code)
	}
	if config.HasBottomTime() && config.BottomTime >= config.MaxPerformance {
		return fmt.Errorf("%w: %s: bottom time must be shorter than max performance", ErrInvalidConfig, config.Code)
	}
	return nil
}

var order = []Code{Static, Dynamic, ConstantWeight}

var table = map[Code]Config{
	Static: {
		Code:            Static,
		Name:            "Static Apnea (STA)",
		OfficialTop:     30,
		SurfaceProtocol: 15,
		MaxPerformance:  600,
	},
	Dynamic: {
		Code:            Dynamic,
		Name:            "Dynamic Apnea (DYN)",
		OfficialTop:     30,
		BottomTime:      10,
		SurfaceProtocol: 15,
		MaxPerformance:  300,
	},
	ConstantWeight: {
		Code:            ConstantWeight,
		Name:            "Constant Weight (CWT)",
		OfficialTop:     30,
		BottomTime:      30,
		SurfaceProtocol: 15,
		MaxPerformance:  240,
	},
}

// Get returns the timing table for code.
func Get(code Code) (Config, error) {
	config, ok := table[code]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDiscipline, string(code))
	}
	return config, nil
}

// Parse normalizes user input such as " dyn " into a known code.
func Parse(value string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := table[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscipline, value)
	}
	return code, nil
}

// Codes lists the supported codes in display order.
func Codes() []Code {
	return append([]Code(nil), order...)
}

// All lists every discipline in display order.
func All() []Config {
	configs := make([]Config, 0, len(order))
	for _, code := range order {
		configs = append(configs, table[code])
	}
	return configs
}
