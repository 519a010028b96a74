package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var (
	registryMu sync.RWMutex
	registry   = map[string]ErrorTemplate{
		// ============================================
		// Validation Errors (E001-E009)
		// ============================================

		"E001": {
			Category: CategoryValidation,
			Message:  "Invalid tag name",
			Detail:   "The first parameter must be a string naming the element to render.",
		},
		"E002": {
			Category: CategoryValidation,
			Message:  "Invalid component constructor",
			Detail:   "The second parameter must be a non-nil function that returns a component.",
		},
		"E003": {
			Category: CategoryValidation,
			Message:  "Invalid props",
			Detail:   "The third parameter must be omitted or be a non-nil property bag.",
		},

		// ============================================
		// Engine Errors (E010-E019)
		// ============================================

		"E010": {
			Category: CategoryEngine,
			Message:  "Element already has a component",
			Detail:   "A VM can only be created once per host element.",
		},
		"E011": {
			Category: CategoryEngine,
			Message:  "Constructor returned nil",
			Detail:   "The component constructor must return a non-nil component.",
		},
		"E012": {
			Category: CategoryEngine,
			Message:  "Element is not a component host",
			Detail:   "Only elements passed to CreateVM can be connected as roots.",
		},
		"E013": {
			Category: CategoryEngine,
			Message:  "Cannot connect a detached element",
			Detail:   "A root element must have a parent before it is connected.",
		},
		"E014": {
			Category: CategoryEngine,
			Message:  "Unknown template node kind",
			Detail:   "The component rendered a VNode the engine cannot mount.",
		},
		"E015": {
			Category: CategoryEngine,
			Message:  "Property decode failed",
			Detail:   "An initial property could not be assigned to the component.",
		},
		"E016": {
			Category: CategoryEngine,
			Message:  "Component nesting too deep",
			Detail:   "Nested custom elements exceeded the maximum depth, which usually means a component renders itself.",
		},

		// ============================================
		// Serializer Errors (E020-E029)
		// ============================================

		"E020": {
			Category: CategorySerialize,
			Message:  "Unknown host node type",
			Detail:   "The serializer encountered a node type it cannot render.",
		},

		// ============================================
		// Config Errors (E030-E039)
		// ============================================

		"E030": {
			Category: CategoryConfig,
			Message:  "Invalid configuration file",
			Detail:   "The configuration file could not be parsed.",
		},
		"E031": {
			Category: CategoryConfig,
			Message:  "Invalid configuration value",
			Detail:   "A configuration value is out of range or not recognized.",
		},

		// ============================================
		// CLI Errors (E040-E049)
		// ============================================

		"E040": {
			Category: CategoryCLI,
			Message:  "Unknown component",
			Detail:   "No component is registered for this tag name.",
		},
		"E041": {
			Category: CategoryCLI,
			Message:  "Component already registered",
			Detail:   "A tag name can only be registered once.",
		},
		"E042": {
			Category: CategoryCLI,
			Message:  "Publish failed",
			Detail:   "The rendered markup could not be uploaded.",
		},
		"E043": {
			Category: CategoryCLI,
			Message:  "Invalid props document",
			Detail:   "The props document must be a single JSON or YAML object.",
		},
	}
)

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[code] = template
}
