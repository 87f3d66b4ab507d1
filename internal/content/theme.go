package content

import (
	"fmt"
	"sort"
	"strings"
)

var themePalette = map[string]Theme{
	"emerald": {Name: "emerald", Accent: "#047857", AccentSoft: "#ecfdf5", Ink: "#064e3b"},
	"sky":     {Name: "sky", Accent: "#0369a1", AccentSoft: "#f0f9ff", Ink: "#0c4a6e"},
	"rose":    {Name: "rose", Accent: "#be123c", AccentSoft: "#fff1f2", Ink: "#881337"},
	"amber":   {Name: "amber", Accent: "#b45309", AccentSoft: "#fffbeb", Ink: "#78350f"},
	"violet":  {Name: "violet", Accent: "#6d28d9", AccentSoft: "#f5f3ff", Ink: "#4c1d95"},
	"teal":    {Name: "teal", Accent: "#0f766e", AccentSoft: "#f0fdfa", Ink: "#134e4a"},
}

const defaultThemeName = "emerald"

// ThemeNames 返回已注册的主题名，按字母排序。
func ThemeNames() []string {
	names := make([]string, 0, len(themePalette))
	for name := range themePalette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme 用对应调色板补齐页面未设置的颜色。
func ResolveTheme(t Theme) (Theme, error) {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" {
		name = defaultThemeName
	}
	base, ok := themePalette[name]
	if !ok {
		return t, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, t.Name, strings.Join(ThemeNames(), ", "))
	}
	if strings.TrimSpace(t.Accent) != "" {
		base.Accent = strings.TrimSpace(t.Accent)
	}
	if strings.TrimSpace(t.AccentSoft) != "" {
		base.AccentSoft = strings.TrimSpace(t.AccentSoft)
	}
	if strings.TrimSpace(t.Ink) != "" {
		base.Ink = strings.TrimSpace(t.Ink)
	}
	return base, nil
}
