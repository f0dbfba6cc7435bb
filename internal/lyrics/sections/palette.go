package sections

// Gradient is a two-stop color ramp in hex notation
type Gradient struct {
	From string
	To   string
}

var palette = map[Category]Gradient{
	CategoryVerse:   {From: "#0ea5e9", To: "#0284c7"},
	CategoryChorus:  {From: "#8b5cf6", To: "#7c3aed"},
	CategoryBridge:  {From: "#f59e0b", To: "#d97706"},
	CategoryIntro:   {From: "#10b981", To: "#059669"},
	CategoryOutro:   {From: "#ef4444", To: "#dc2626"},
	CategoryDefault: {From: "#6b7280", To: "#4b5563"},
}

// Chip colors for tag and style badges
const (
	TagColor   = "#8bd7ff"
	StyleColor = "#c4b5fd"
)

// Palette returns the gradient for a category, falling back to the default one
func Palette(category Category) Gradient {
	if g, ok := palette[category]; ok {
		return g
	}
	return palette[CategoryDefault]
}
