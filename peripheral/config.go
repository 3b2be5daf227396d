package peripheral

import "fmt"

// InvalidConfigError is returned when a kind-specific configuration
// option has the wrong type or an out-of-range value. Option values
// are tunables; only type and range are checked, never optimality.
type InvalidConfigError struct {
	Peripheral string
	Option     string
	Reason     string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("peripheral %s option %s: %s",
		e.Peripheral, e.Option, e.Reason)
}

// Configuration options understood per kind. Options not listed here
// pass through unchecked.
const (
	OptMemoryModule      = "module"
	OptL2CacheSize       = "l2_cache_size"
	OptL2CacheMinWidth   = "l2_cache_min_data_width"
	OptL2CacheReverse    = "l2_cache_reverse"
	OptFlashMode         = "mode"
	OptFlashDummyCycles  = "dummy_cycles"
	OptComputeCoreType   = "cpu_type"
	OptComputeCoreFlavor = "cpu_variant"
)

func validateConfig(p Peripheral) error {
	switch p.Kind {
	case KindMemoryController:
		return validateMemoryControllerConfig(p)
	case KindBootFlash:
		return validateBootFlashConfig(p)
	default:
		return nil
	}
}

func validateMemoryControllerConfig(p Peripheral) error {
	if v, ok := p.Config[OptMemoryModule]; ok {
		s, isString := v.(string)
		if !isString || s == "" {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptMemoryModule,
				Reason:     "must be a non-empty module name",
			}
		}
	}

	if v, ok := p.Config[OptL2CacheSize]; ok {
		size, isUint := v.(uint64)
		if !isUint || size == 0 {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptL2CacheSize,
				Reason:     "must be a non-zero byte count",
			}
		}
	}

	if v, ok := p.Config[OptL2CacheMinWidth]; ok {
		width, isInt := v.(int)
		if !isInt || width <= 0 {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptL2CacheMinWidth,
				Reason:     "must be a positive bit width",
			}
		}
	}

	if v, ok := p.Config[OptL2CacheReverse]; ok {
		if _, isBool := v.(bool); !isBool {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptL2CacheReverse,
				Reason:     "must be a bool",
			}
		}
	}

	return nil
}

func validateBootFlashConfig(p Peripheral) error {
	if v, ok := p.Config[OptFlashMode]; ok {
		mode, isString := v.(string)
		if !isString || (mode != "1x" && mode != "4x") {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptFlashMode,
				Reason:     `must be "1x" or "4x"`,
			}
		}
	}

	if v, ok := p.Config[OptFlashDummyCycles]; ok {
		cycles, isInt := v.(int)
		if !isInt || cycles < 0 {
			return InvalidConfigError{
				Peripheral: p.Name,
				Option:     OptFlashDummyCycles,
				Reason:     "must be a non-negative cycle count",
			}
		}
	}

	return nil
}
