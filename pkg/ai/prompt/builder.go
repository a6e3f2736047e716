package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"henna-assistant-be/pkg/faq"

	"gopkg.in/yaml.v3"
)

//go:embed instructions.yaml
var defaultInstructions []byte

// Link is a labelled URL rendered as a markdown link.
type Link struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

func (l Link) Markdown() string {
	s := fmt.Sprintf("[%s](%s)", l.Label, l.URL)
	if l.Icon != "" {
		s = l.Icon + " " + s
	}
	return s
}

// Section is one numbered topic the assistant should cover.
type Section struct {
	Title  string   `yaml:"title"`
	Points []string `yaml:"points"`
	Link   *Link    `yaml:"link"`
}

// Instructions are the fixed behavioural rules appended to every prompt.
type Instructions struct {
	Persona      string    `yaml:"persona"`
	StyleIntro   string    `yaml:"style_intro"`
	LanguageNote string    `yaml:"language_note"`
	Sections     []Section `yaml:"sections"`
	Tone         []string  `yaml:"tone"`
	Contacts     []Link    `yaml:"contacts"`
	Social       []Link    `yaml:"social"`
	CallToAction string    `yaml:"call_to_action"`
	Fallback     string    `yaml:"fallback"`
}

// DefaultInstructions returns the embedded instruction set.
func DefaultInstructions() *Instructions {
	ins, err := ParseInstructions(defaultInstructions)
	if err != nil {
		panic(fmt.Errorf("embedded prompt instructions: %w", err))
	}
	return ins
}

func ParseInstructions(b []byte) (*Instructions, error) {
	var ins Instructions
	if err := yaml.Unmarshal(b, &ins); err != nil {
		return nil, fmt.Errorf("parse prompt instructions: %w", err)
	}
	return &ins, nil
}

// MissingLinks lists the contact, social and section links that have no URL,
// including whole groups left empty.
func (ins *Instructions) MissingLinks() []string {
	var missing []string
	if len(ins.Contacts) == 0 {
		missing = append(missing, "contacts")
	}
	if len(ins.Social) == 0 {
		missing = append(missing, "social")
	}
	for _, group := range [][]Link{ins.Contacts, ins.Social} {
		for _, l := range group {
			if strings.TrimSpace(l.URL) == "" {
				missing = append(missing, l.Label)
			}
		}
	}
	for _, sec := range ins.Sections {
		if sec.Link != nil && strings.TrimSpace(sec.Link.URL) == "" {
			missing = append(missing, sec.Link.Label)
		}
	}
	return missing
}

// LoadInstructions reads an instruction file. An empty path yields the defaults.
func LoadInstructions(path string) (*Instructions, error) {
	if path == "" {
		return DefaultInstructions(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInstructions(b)
}

// Builder assembles the single prompt string sent per turn.
type Builder struct {
	instructions *Instructions
	tail         string
}

func NewBuilder(ins *Instructions) *Builder {
	if ins == nil {
		ins = DefaultInstructions()
	}
	return &Builder{instructions: ins, tail: renderInstructions(ins)}
}

// Build embeds the FAQ list, the business context, the raw input and the
// fixed instructions. A non-English language adds a reply-language note.
func (b *Builder) Build(entries []faq.Entry, personal map[string]interface{}, input, language string) string {
	var sb strings.Builder

	sb.WriteString("FAQ Context: ")
	sb.WriteString(encode(entries))
	sb.WriteString("\nPersonal Context: ")
	sb.WriteString(encode(personal))
	sb.WriteString("\nUser Input: ")
	sb.WriteString(input)
	sb.WriteString("\n\n")

	if language != "" && language != "en" && b.instructions.LanguageNote != "" {
		sb.WriteString(strings.ReplaceAll(b.instructions.LanguageNote, "{lang}", language))
		sb.WriteString("\n\n")
	}

	sb.WriteString(b.tail)
	return sb.String()
}

func renderInstructions(ins *Instructions) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(ins.Persona))
	sb.WriteString("\n\n")

	if ins.StyleIntro != "" {
		sb.WriteString(ins.StyleIntro)
		sb.WriteString("\n")
	}
	for i, s := range ins.Sections {
		fmt.Fprintf(&sb, "%d. %s:\n", i+1, s.Title)
		for _, p := range s.Points {
			fmt.Fprintf(&sb, "   - %s\n", p)
		}
		if s.Link != nil {
			fmt.Fprintf(&sb, "   - Link for full details: 🌿 %s\n", s.Link.Markdown())
		}
	}
	sb.WriteString("\n")

	sb.WriteString("Always keep responses:\n")
	for _, t := range ins.Tone {
		fmt.Fprintf(&sb, "- %s\n", t)
	}
	if len(ins.Contacts) > 0 {
		sb.WriteString("- Include clickable contact options for any action:\n")
		sb.WriteString(joinLinks(ins.Contacts))
		sb.WriteString("\n")
	}
	if len(ins.Social) > 0 {
		sb.WriteString("- Include links to recent work:\n")
		sb.WriteString(joinLinks(ins.Social))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if ins.CallToAction != "" {
		sb.WriteString(ins.CallToAction)
		sb.WriteString("\n")
	}
	if ins.Fallback != "" {
		sb.WriteString(ins.Fallback)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func joinLinks(links []Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, l.Markdown())
	}
	return strings.Join(parts, " | ")
}

// encode renders context as JSON; an empty value becomes "[]" or "{}" rather than "null".
func encode(v interface{}) string {
	switch x := v.(type) {
	case []faq.Entry:
		if x == nil {
			return "[]"
		}
	case map[string]interface{}:
		if x == nil {
			return "{}"
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
