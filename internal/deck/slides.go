package deck

// Slide is one unit of presented content. Prompt describes the background
// the slide asks the image service for.
type Slide struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Subtitle string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Body     []string `yaml:"body,omitempty" json:"body,omitempty"`
	Prompt   string   `yaml:"prompt" json:"-"`
}

// DefaultSlides is the built-in investor deck for "Unforbidden".
func DefaultSlides() []Slide {
	return []Slide{
		{
			ID:       "title",
			Title:    "UNFORBIDDEN",
			Subtitle: "A feature film in development",
			Body:     []string{"Official investor presentation"},
			Prompt:   "A lone figure standing at the edge of a rain-soaked rooftop at night, city lights bleeding into fog below",
		},
		{
			ID:       "logline",
			Title:    "The Story",
			Subtitle: "Some doors are locked for a reason.",
			Body: []string{
				"A disgraced archivist discovers a sealed collection of films that were never meant to be seen.",
				"To clear her name she must screen them, and every reel rewrites the city around her.",
			},
			Prompt: "An abandoned art deco cinema, a single projector beam cutting through dust toward an empty screen",
		},
		{
			ID:       "vision",
			Title:    "Director's Vision",
			Subtitle: "Neo-noir, grounded and intimate",
			Body: []string{
				"Practical locations, natural light, anamorphic lenses.",
				"A thriller that trusts its audience.",
			},
			Prompt: "Close-up of vintage film reels stacked on a cluttered archive desk, warm tungsten lamp, deep shadows",
		},
		{
			ID:       "market",
			Title:    "Market Opportunity",
			Subtitle: "Elevated genre travels",
			Body: []string{
				"Mid-budget thrillers consistently recoup across theatrical, streaming and international sales.",
				"Streaming platforms are actively acquiring finished, cast-attached genre titles.",
			},
			Prompt: "A crowded festival premiere at dusk, red carpet glowing under marquee lights, silhouettes of the audience",
		},
		{
			ID:       "comparables",
			Title:    "Comparable Titles",
			Subtitle: "Proven audience, contained budgets",
			Body: []string{
				"Character-driven mysteries with a single strong lead.",
				"Contained locations, high production value per dollar.",
			},
			Prompt: "A dim screening room with rows of empty velvet seats, light flickering from the projection booth window",
		},
		{
			ID:       "team",
			Title:    "The Team",
			Subtitle: "Experienced, independent, accountable",
			Body: []string{
				"Writer-director with two festival-selected features.",
				"Producers with a track record of delivering on schedule and on budget.",
			},
			Prompt: "A film crew silhouetted against a bright practical light on a night exterior set, camera on a dolly track",
		},
		{
			ID:       "budget",
			Title:    "Budget",
			Subtitle: "Every dollar on screen",
			Body: []string{
				"Development, production and post fully scheduled.",
				"Contingency and completion bond included.",
			},
			Prompt: "An editing suite at night, timeline glowing on multiple monitors, coffee cups and handwritten notes",
		},
		{
			ID:       "terms",
			Title:    "Investment Terms",
			Subtitle: "Recoupment first",
			Body: []string{
				"Investors recoup their contribution plus a premium before profit participation.",
				"Backend participation in all revenue streams thereafter.",
			},
			Prompt: "A quiet harbor at blue hour, a single boat light reflected on still water, distant skyline",
		},
		{
			ID:       "distribution",
			Title:    "Distribution Strategy",
			Subtitle: "Festival launch, global sales",
			Body: []string{
				"Premiere at a tier-one festival, then worldwide sales through an established agent.",
				"Parallel conversations with streaming buyers from pre-production.",
			},
			Prompt: "A long highway at night stretching toward a glowing city on the horizon, light trails from passing cars",
		},
		{
			ID:       "contact",
			Title:    "Join Us",
			Subtitle: "Let's make something unforgettable",
			Body:     []string{"Request the full business plan and screenplay."},
			Prompt:   "Sunrise breaking over a city skyline seen from a rooftop, the same figure from the opening now facing the light",
		},
	}
}
