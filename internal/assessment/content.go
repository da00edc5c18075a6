package assessment

import "strings"

type Platform string

const (
	PlatformMicrosoft Platform = "microsoft"
	PlatformGoogle    Platform = "google"
	PlatformSlack     Platform = "slack"
	PlatformOther     Platform = "other"
)

var Platforms = []Platform{PlatformMicrosoft, PlatformGoogle, PlatformSlack, PlatformOther}

// ParsePlatform normalizes a platform name. Unknown names map to "other"
// with ok=false.
func ParsePlatform(s string) (Platform, bool) {
	norm := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Platforms {
		if p == norm {
			return p, true
		}
	}
	return PlatformOther, false
}

// ArchetypeContent is the static copy attached to one archetype.
type ArchetypeContent struct {
	DisplayName string
	Tagline     string
	Strengths   []string
	QuickWins   []string
	ToolStacks  map[Platform][]string
}

// ContentLibrary is the read-only content table. Accessors return copies, so
// one library can be shared by concurrent scorers.
type ContentLibrary struct {
	archetypes map[Archetype]ArchetypeContent
	questions  []Question
}

// NewContentLibrary builds the built-in library.
func NewContentLibrary() *ContentLibrary {
	return &ContentLibrary{
		archetypes: defaultContent(),
		questions:  defaultQuestions(),
	}
}

// Recommend looks up strengths, quick wins and the platform tool stack.
// Unknown archetypes yield empty lists.
func (l *ContentLibrary) Recommend(a Archetype, platform string) Recommendations {
	recs := Recommendations{Strengths: []string{}, QuickWins: []string{}, ToolStack: []string{}}
	c, ok := l.archetypes[a]
	if !ok {
		return recs
	}

	p, _ := ParsePlatform(platform)
	stack, ok := c.ToolStacks[p]
	if !ok {
		stack = c.ToolStacks[PlatformOther]
	}

	recs.Strengths = append(recs.Strengths, c.Strengths...)
	recs.QuickWins = append(recs.QuickWins, c.QuickWins...)
	recs.ToolStack = append(recs.ToolStack, stack...)
	return recs
}

func (l *ContentLibrary) Tagline(a Archetype) string {
	return l.archetypes[a].Tagline
}

// DisplayName returns the capitalized archetype name, or the raw value when
// unknown.
func (l *ContentLibrary) DisplayName(a Archetype) string {
	if c, ok := l.archetypes[a]; ok {
		return c.DisplayName
	}
	return string(a)
}

// Questions returns a copy of the question bank.
func (l *ContentLibrary) Questions() []Question {
	out := make([]Question, len(l.questions))
	copy(out, l.questions)
	return out
}

func defaultContent() map[Archetype]ArchetypeContent {
	return map[Archetype]ArchetypeContent{
		Architect: {
			DisplayName: "Architect",
			Tagline:     "systematic builders of scalable foundations",
			Strengths:   []string{"Framework design", "Process optimization", "Long-term planning", "System integration"},
			QuickWins:   []string{"Implement project templates", "Create workflow documentation", "Set up automation tools"},
			ToolStacks: map[Platform][]string{
				PlatformMicrosoft: {"Microsoft 365", "Planner", "SharePoint", "Power Automate"},
				PlatformGoogle:    {"Workspace", "Sheets Scripts", "Sites", "AppSheet"},
				PlatformSlack:     {"Workflow Builder", "Canvas", "Lists", "Integrations"},
				PlatformOther:     {"Notion", "Zapier", "Airtable", "Monday"},
			},
		},
		Conductor: {
			DisplayName: "Conductor",
			Tagline:     "orchestrators of collaborative excellence",
			Strengths:   []string{"Team coordination", "Meeting facilitation", "Stakeholder alignment", "Resource orchestration"},
			QuickWins:   []string{"Reduce status meetings with async updates", "Define decision owners", "Weekly cadence dashboard"},
			ToolStacks: map[Platform][]string{
				PlatformMicrosoft: {"Teams", "Planner", "Loop", "Outlook"},
				PlatformGoogle:    {"Meet", "Calendar", "Groups", "Chat"},
				PlatformSlack:     {"Huddles", "Channels", "Canvas", "Status"},
				PlatformOther:     {"Zoom", "Miro", "Asana", "Loom"},
			},
		},
		Curator: {
			DisplayName: "Curator",
			Tagline:     "quality guardians and creative refiners",
			Strengths:   []string{"Quality assurance", "Detail orientation", "Creative curation", "Standard maintenance"},
			QuickWins:   []string{"Develop review checklists", "Create style guides", "Set up quality gates"},
			ToolStacks: map[Platform][]string{
				PlatformMicrosoft: {"Planner", "Teams", "OneNote", "Whiteboard"},
				PlatformGoogle:    {"Keep", "Drive", "Jamboard", "Forms"},
				PlatformSlack:     {"Canvas", "Bookmarks", "Threads", "Shared Channels"},
				PlatformOther:     {"Figma", "Dropbox", "Trello", "Basecamp"},
			},
		},
		Craftsperson: {
			DisplayName: "Craftsperson",
			Tagline:     "deep work and quality at the edges",
			Strengths:   []string{"Detail execution", "Technical craft", "Quality control", "Repeatable delivery"},
			QuickWins:   []string{"Protect maker time", "Limit WIP", "Definition of ready"},
			ToolStacks: map[Platform][]string{
				PlatformMicrosoft: {"To Do", "OneDrive", "Focus Assist", "Teams Status"},
				PlatformGoogle:    {"Docs", "Drive", "Calendar", "Focus Mode"},
				PlatformSlack:     {"DND Mode", "Saved Items", "Direct Messages", "Reminders"},
				PlatformOther:     {"Linear", "GitHub", "Bear", "RescueTime"},
			},
		},
	}
}
