package email

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/lumenretail/marketing-agent/internal/pkg/logger"
)

// TemplateService renders Liquid templates for email bodies so campaign
// copy can reference recipient fields like {{ first_name }}. Rendering
// is lax: plain text without tags passes through unchanged, and any
// template error falls back to the original string.
type TemplateService struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateService creates a template service with marketing filters
func NewTemplateService() *TemplateService {
	ts := &TemplateService{engine: liquid.NewEngine()}
	ts.registerFilters()
	return ts
}

func (ts *TemplateService) registerFilters() {
	// Fallback value: {{ first_name | default: "Friend" }}
	ts.engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	// Capitalize first letter: {{ name | capitalize }}
	ts.engine.RegisterFilter("capitalize", func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(string(s[0])) + strings.ToLower(s[1:])
	})

	// Truncate with ellipsis: {{ offer | truncate: 50 }}
	ts.engine.RegisterFilter("truncate", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})

	// Currency formatting: {{ total_spent | currency }}
	ts.engine.RegisterFilter("currency", func(value interface{}) string {
		switch v := value.(type) {
		case float64:
			return fmt.Sprintf("$%.2f", v)
		case int:
			return fmt.Sprintf("$%.2f", float64(v))
		default:
			return fmt.Sprintf("%v", value)
		}
	})
}

// Render processes a template with the given bindings. On any error the
// original template string is returned so a send never goes out empty.
func (ts *TemplateService) Render(cacheKey, templateStr string, bindings map[string]interface{}) string {
	var tpl *liquid.Template

	if cacheKey != "" {
		if cached, ok := ts.cache.Load(cacheKey); ok {
			tpl = cached.(*liquid.Template)
		}
	}

	if tpl == nil {
		parsed, err := ts.engine.ParseString(templateStr)
		if err != nil {
			logger.Warn("email: template parse error", "error", err.Error())
			return templateStr
		}
		tpl = parsed
		if cacheKey != "" {
			ts.cache.Store(cacheKey, tpl)
		}
	}

	out, err := tpl.RenderString(bindings)
	if err != nil {
		logger.Warn("email: template render error", "error", err.Error())
		return templateStr
	}
	return out
}
