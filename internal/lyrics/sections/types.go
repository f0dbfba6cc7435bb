package sections

// Section is one block of parsed lyrics
type Section struct {
	Type    string   `json:"type" yaml:"type"`
	Tags    []string `json:"tags" yaml:"tags"`
	Styles  []string `json:"styles" yaml:"styles"`
	Content string   `json:"content" yaml:"content"`
}

// Category is the display bucket of a section, used for coloring
type Category string

const (
	CategoryVerse   Category = "verse"
	CategoryChorus  Category = "chorus"
	CategoryBridge  Category = "bridge"
	CategoryIntro   Category = "intro"
	CategoryOutro   Category = "outro"
	CategoryDefault Category = "default"
)

// introType is used for sections that start without an explicit header
const introType = "Intro"

func newSection(sectionType string, tags, styles []string, content string) Section {
	return Section{
		Type:    sectionType,
		Tags:    append([]string{}, tags...),
		Styles:  append([]string{}, styles...),
		Content: content,
	}
}

// retained reports whether the section carries anything worth showing
func (s Section) retained() bool {
	return hasText(s.Content) || len(s.Tags) > 0 || len(s.Styles) > 0
}

// appendLine adds a content line, newline-joined onto existing content
func (s *Section) appendLine(line string) {
	if line == "" {
		return
	}
	if s.Content != "" {
		s.Content += "\n"
	}
	s.Content += line
}
